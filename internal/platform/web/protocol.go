// Package web bridges the platformer to a browser over a websocket. The
// server runs the simulation; the page only draws what it is told and sends
// input signals and overlay dismissals back.
package web

import (
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// Server to client message types.
const (
	TypeLevel   = "level"
	TypeFrame   = "frame"
	TypeOverlay = "overlay"
	TypeHide    = "hide"
	TypeLabel   = "label"
	TypeScene   = "scene"
	TypeEvent   = "event"
)

// Client to server message types.
const (
	TypeInput   = "input"
	TypeDismiss = "dismiss"
	TypePause   = "pause"
	TypeRestart = "restart"
)

type clientMessage struct {
	Type  string `json:"type"`
	Left  bool   `json:"left"`
	Right bool   `json:"right"`
	Jump  bool   `json:"jump"`
}

func (m clientMessage) signals() core.Signals {
	return core.Signals{LeftHeld: m.Left, RightHeld: m.Right, JumpPressed: m.Jump}
}

type wireBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func toWire(b core.Box) wireBox {
	return wireBox{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

type wirePlatform struct {
	wireBox
	Kind string `json:"kind"`
}

type wireCollectible struct {
	wireBox
	ID int `json:"id"`
}

type levelMessage struct {
	Type         string            `json:"type"`
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Width        float64           `json:"width"`
	Height       float64           `json:"height"`
	Platforms    []wirePlatform    `json:"platforms"`
	Hazards      []wireBox         `json:"hazards"`
	Collectibles []wireCollectible `json:"collectibles"`
	Goal         wireBox           `json:"goal"`
}

func newLevelMessage(g *level.Geometry) levelMessage {
	msg := levelMessage{
		Type:   TypeLevel,
		ID:     g.ID,
		Name:   g.Name,
		Width:  g.Width,
		Height: g.Height,
		Goal:   toWire(g.Goal),
	}
	for _, p := range g.Platforms {
		msg.Platforms = append(msg.Platforms, wirePlatform{wireBox: toWire(p.Box), Kind: string(p.Kind)})
	}
	for _, h := range g.Hazards {
		msg.Hazards = append(msg.Hazards, toWire(h))
	}
	for _, c := range g.Collectibles {
		msg.Collectibles = append(msg.Collectibles, wireCollectible{wireBox: toWire(c.Box), ID: c.ID})
	}
	return msg
}

type frameMessage struct {
	Type       string  `json:"type"`
	Tick       int     `json:"tick"`
	State      string  `json:"state"`
	Lives      int     `json:"lives"`
	Pickups    int     `json:"pickups"`
	Player     wireBox `json:"player"`
	FacingLeft bool    `json:"facing_left,omitempty"`
	Invincible bool    `json:"invincible,omitempty"`
	Active     []int   `json:"active"` // ids of collectibles still in the level
}

func newFrameMessage(g *platformer.Game, st core.GameState) frameMessage {
	char := g.Character()
	msg := frameMessage{
		Type:       TypeFrame,
		Tick:       st.Tick,
		State:      st.State,
		Lives:      st.Lives,
		Pickups:    st.Pickups,
		Player:     toWire(char.Box()),
		FacingLeft: char.Facing == platformer.FacingLeft,
		Invincible: g.Invincible(),
		Active:     []int{},
	}
	for _, c := range g.Collectibles() {
		if c.Active {
			msg.Active = append(msg.Active, c.ID)
		}
	}
	return msg
}

type overlayMessage struct {
	Type        string             `json:"type"`
	Overlay     platformer.Overlay `json:"overlay"`
	Dismissible bool               `json:"dismissible"`
	Label       string             `json:"label,omitempty"`
}

type labelMessage struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

type sceneMessage struct {
	Type  string `json:"type"`
	Scene string `json:"scene"`
}

type eventMessage struct {
	Type  string `json:"type"`
	Event string `json:"event"`
}

type hideMessage struct {
	Type string `json:"type"`
}
