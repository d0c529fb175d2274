package tui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorPlatform:   lipgloss.NewStyle().Foreground(lipgloss.Color("173")),
	core.ColorHazard:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorMemory:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorGoal:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorPlayer:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	core.ColorPlayerHurt: lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
	core.ColorHeart:      lipgloss.NewStyle().Foreground(lipgloss.Color("197")),
	core.ColorDim:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorOverlay:    lipgloss.NewStyle().Foreground(lipgloss.Color("225")),
	core.ColorAccent:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

const (
	hudRows    = 1
	cameraLead = 200.0 // world px kept visible behind the character
)

// Camera maps world pixels onto screen cells. The level height always fits
// the rows below the HUD; columns are half as tall as rows are wide.
type Camera struct {
	ScrollX float64
	CellW   float64 // px per column
	CellH   float64 // px per row
	Top     int     // first screen row of the world view
}

// NewCamera follows the character at charX inside the level bounds.
func NewCamera(lvl *level.Geometry, charX float64, w, h int) Camera {
	rows := max(h-hudRows, 1)
	cellH := lvl.Height / float64(rows)
	cellW := cellH / 2
	view := float64(w) * cellW
	scroll := core.ClampF(charX-cameraLead, 0, math.Max(0, lvl.Width-view))
	return Camera{ScrollX: scroll, CellW: cellW, CellH: cellH, Top: hudRows}
}

// Rect projects a world box onto the screen. The result always covers at
// least one cell so small objects stay visible.
func (c Camera) Rect(b core.Box) core.Rect {
	x0 := int(math.Floor((b.X - c.ScrollX) / c.CellW))
	x1 := int(math.Ceil((b.Right() - c.ScrollX) / c.CellW))
	y0 := int(math.Floor(b.Y / c.CellH))
	y1 := int(math.Ceil(b.Bottom() / c.CellH))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0+c.Top, x1-x0, y1-y0)
}

// DrawGame renders the world, HUD and any overlay requested through host.
// shake offsets the camera by one column while positive.
func DrawGame(s *core.Screen, g *platformer.Game, host *Host, shake int) {
	s.Clear()

	lvl := g.Level()
	char := g.Character()
	cam := NewCamera(lvl, char.Pos.X, s.Width(), s.Height())
	if shake > 0 {
		cam.ScrollX += float64(shake%2*2-1) * cam.CellW
	}

	for _, p := range lvl.Platforms {
		fill, color := '█', core.ColorGround
		if p.Kind == level.KindBrick {
			fill, color = '▓', core.ColorPlatform
		}
		s.FillRect(cam.Rect(p.Box), fill, color)
	}
	for _, hz := range lvl.Hazards {
		s.FillRect(cam.Rect(hz), '▲', core.ColorHazard)
	}
	for _, c := range g.Collectibles() {
		if c.Active {
			s.FillRect(cam.Rect(c.Box), '◆', core.ColorMemory)
		}
	}
	s.FillRect(cam.Rect(lvl.Goal), '█', core.ColorGoal)

	playerColor := core.ColorPlayer
	if g.Invincible() && g.CurrentTick()/6%2 == 0 {
		playerColor = core.ColorPlayerHurt
	}
	s.FillRect(cam.Rect(char.Box()), '█', playerColor)

	drawHUD(s, g)

	if o, ok := host.Overlay(); ok {
		drawOverlay(s, o, host.Label(), host.Dismissible())
	} else if g.Session().State() == platformer.StatePaused {
		s.DrawTextCentered(s.Height()/2, " PAUSED - press P to resume ")
	}
}

func drawHUD(s *core.Screen, g *platformer.Game) {
	s.FillRect(core.NewRect(0, 0, s.Width(), hudRows), ' ', core.ColorDefault)

	x := 1
	for i := range platformer.MaxLives {
		heart := '♥'
		color := core.ColorHeart
		if i >= g.Lives() {
			heart, color = '♡', core.ColorDim
		}
		s.SetColored(x, 0, heart, color)
		x += 2
	}

	lvl := g.Level()
	found := 0
	for _, c := range lvl.Collectibles {
		if g.Ledger().Has(c.ID) {
			found++
		}
	}
	s.DrawTextColored(x+1, 0, fmt.Sprintf("Memories %d/%d", found, len(lvl.Collectibles)), core.ColorMemory)

	title := g.Title()
	s.DrawTextColored(s.Width()-utf8.RuneCountInString(title)-1, 0, title, core.ColorDim)
}

func drawOverlay(s *core.Screen, o platformer.Overlay, label string, dismissible bool) {
	w := min(s.Width()-4, 52)
	if w < 12 {
		return
	}

	var lines []string
	if o.Photo > 0 {
		lines = append(lines, fmt.Sprintf("[ photo %d ]", o.Photo), "")
	}
	lines = append(lines, wrapText(o.Text, w-4)...)
	buttonLine := -1
	if dismissible {
		lines = append(lines, "")
		buttonLine = len(lines)
		lines = append(lines, fmt.Sprintf("[ Enter: %s ]", label))
	}

	h := min(len(lines)+2, s.Height())
	r := core.NewRect((s.Width()-w)/2, core.Clamp((s.Height()-h)/2, 0, s.Height()), w, h)
	s.FillRect(r, ' ', core.ColorOverlay)
	s.DrawBox(r, core.ColorAccent)

	for i, line := range lines {
		if i >= h-2 {
			break
		}
		color := core.ColorOverlay
		if i == buttonLine {
			color = core.ColorAccent
		}
		s.DrawTextColored(r.X+(w-utf8.RuneCountInString(line))/2, r.Y+1+i, line, color)
	}
}

// wrapText word-wraps text to width and trims the padding lipgloss adds.
func wrapText(text string, width int) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

// Lines of the closing scene.
const (
	finalTitle   = "Happy Valentine's Day!"
	finalMessage = "You walked the whole way,\ncarrying the memories we share.\nI love you so much."
	finalHint    = "Space: play again  |  B: menu  |  Q: quit"
)

// DrawFinal renders the closing scene shown after the goal.
func DrawFinal(s *core.Screen, found, total int) {
	s.Clear()

	lines := strings.Split(finalMessage, "\n")
	y := max((s.Height()-len(lines)-6)/2, 0)

	drawCentered(s, y, finalTitle, core.ColorAccent)
	for i, line := range lines {
		drawCentered(s, y+2+i, line, core.ColorOverlay)
	}
	drawCentered(s, y+3+len(lines), fmt.Sprintf("Memories collected: %d/%d", found, total), core.ColorMemory)
	drawCentered(s, s.Height()-2, finalHint, core.ColorDim)
}

func drawCentered(s *core.Screen, y int, text string, c core.Color) {
	s.DrawTextColored((s.Width()-utf8.RuneCountInString(text))/2, y, text, c)
}
