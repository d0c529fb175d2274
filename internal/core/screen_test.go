package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(3, 4, '▲', ColorHazard)

	cell := s.GetCell(3, 4)
	if cell.Rune != '▲' || cell.Color != ColorHazard {
		t.Errorf("GetCell = %+v, expected ▲ with hazard colour", cell)
	}

	// Out of bounds writes are ignored, reads return blank
	s.SetColored(-1, 0, 'X', ColorHazard)
	s.SetColored(0, 100, 'X', ColorHazard)
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(0, 0, "♥♥♡")

	if s.Get(0, 0) != '♥' || s.Get(2, 0) != '♡' {
		t.Errorf("multibyte text misplaced: %q", s.Row(0))
	}
	if s.Get(3, 0) != ' ' {
		t.Error("text should advance one cell per rune")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorOverlay)

	if s.Get(1, 1) != '╭' || s.Get(5, 1) != '╮' || s.Get(1, 4) != '╰' || s.Get(5, 4) != '╯' {
		t.Error("box corners not drawn")
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	if s.GetCell(1, 2).Color != ColorOverlay {
		t.Error("box should carry its colour")
	}
}

func TestScreenFillRectAndString(t *testing.T) {
	s := NewScreen(4, 2)
	s.FillRect(NewRect(0, 0, 4, 1), '=', ColorGround)
	s.DrawText(0, 1, "ab")

	if got := s.String(); got != "====\nab  " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.Resize(8, 4)

	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize dimensions = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.Row(0)) != "" {
		t.Error("resize should leave a blank buffer")
	}
	if s.Row(-1) != "        " {
		t.Error("out of bounds row should be spaces")
	}
}
