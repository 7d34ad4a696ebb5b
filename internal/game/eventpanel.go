package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	eventPanelWidth = 260
	eventMaxEntries = 40
	eventLineHeight = 14
)

// EventKind picks the marker colour of a panel line.
type EventKind int

const (
	EventInfo EventKind = iota
	EventAccepted
	EventRejected
	EventPhase
)

var eventKindColors = map[EventKind]color.RGBA{
	EventInfo:     {R: 160, G: 160, B: 160, A: 255},
	EventAccepted: {R: 80, G: 200, B: 80, A: 255},
	EventRejected: {R: 210, G: 70, B: 70, A: 255},
	EventPhase:    {R: 100, G: 100, B: 250, A: 255},
}

// PanelEntry is a single line in the event panel.
type PanelEntry struct {
	Tick    int
	Label   string // tile coordinate or "--"
	Kind    EventKind
	Message string
}

// EventPanel is a ring buffer of recent commands and phase changes rendered
// on the right edge of the window.
type EventPanel struct {
	entries []PanelEntry
	head    int
	count   int
}

// NewEventPanel creates a panel with a fixed capacity.
func NewEventPanel() *EventPanel {
	return &EventPanel{
		entries: make([]PanelEntry, eventMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest when full.
func (p *EventPanel) Add(tick int, label string, kind EventKind, msg string) {
	p.entries[p.head] = PanelEntry{
		Tick:    tick,
		Label:   label,
		Kind:    kind,
		Message: msg,
	}
	p.head = (p.head + 1) % eventMaxEntries
	if p.count < eventMaxEntries {
		p.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (p *EventPanel) Recent() []PanelEntry {
	result := make([]PanelEntry, p.count)
	for i := 0; i < p.count; i++ {
		idx := (p.head - p.count + i + eventMaxEntries) % eventMaxEntries
		result[i] = p.entries[idx]
	}
	return result
}

// Draw renders the panel flush with the right edge of the screen.
func (p *EventPanel) Draw(screen *ebiten.Image, screenW, screenH int) {
	panelX := float32(screenW - eventPanelWidth)
	vector.FillRect(screen, panelX, 0, eventPanelWidth, float32(screenH), color.RGBA{R: 20, G: 20, B: 20, A: 220}, false)
	vector.StrokeLine(screen, panelX, 0, panelX, float32(screenH), 1.0, outlineColor, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", int(panelX)+8, 2)

	entries := p.Recent()
	maxVisible := (screenH - 24) / eventLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for _, e := range entries {
		vector.FillRect(screen, panelX+5, float32(y+5), 3, 6, eventKindColors[e.Kind], false)
		line := fmt.Sprintf("%4d %s %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, int(panelX)+12, y)
		y += eventLineHeight
	}
}
