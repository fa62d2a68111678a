package calendar

import "github.com/dmitrijs2005/sitereg/internal/models"

// DragState is the state of a reschedule gesture.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Move is the outcome of dropping an installation on a cell.
type Move struct {
	InstallationID string
	From           models.Date
	To             models.Date
}

// Changed is false when the drop landed on the origin day; such a move
// must not reach the store.
func (m Move) Changed() bool {
	return m.From != m.To
}

// Drag tracks one installation being moved across the calendar.
// The zero value is idle.
type Drag struct {
	state  DragState
	id     string
	origin models.Date
}

// Start picks up an installation and remembers the day it came from.
// Starting again while dragging replaces the previous gesture.
func (d *Drag) Start(installationID string, origin models.Date) {
	d.state = Dragging
	d.id = installationID
	d.origin = origin
}

// Drop ends the gesture on target. ok is false when nothing was being
// dragged.
func (d *Drag) Drop(target models.Date) (m Move, ok bool) {
	if d.state != Dragging {
		return Move{}, false
	}
	m = Move{InstallationID: d.id, From: d.origin, To: target}
	d.Cancel()
	return m, true
}

// Cancel returns to idle without producing a move.
func (d *Drag) Cancel() {
	*d = Drag{}
}

func (d *Drag) State() DragState {
	return d.state
}
