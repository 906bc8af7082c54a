// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventWindowLeave
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
)

// Event represents a processed input event. Pointer coordinates are window
// pixels for both mouse and touch.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Shift  bool
	Repeat bool

	Width  int
	Height int

	X, Y    float32
	Button  uint8
	Touch   bool
	TouchID int64

	// WheelY follows the scroll-down-is-positive convention.
	WheelY float32
}

// Input handles all input processing.
type Input struct {
	events []Event
	width  int
	height int
}

// New creates a new input handler. The window size is needed to map touch
// coordinates, which SDL reports normalized.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// SetSize updates the window size used for touch mapping.
func (i *Input) SetSize(width, height int) {
	i.width, i.height = width, height
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.translate(event) {
			return true
		}
	}
	return false
}

func (i *Input) translate(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.push(Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			i.SetSize(int(e.Data1), int(e.Data2))
			i.push(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
		case sdl.WINDOWEVENT_LEAVE:
			i.push(Event{Type: EventWindowLeave})
		}

	case *sdl.KeyboardEvent:
		ev := Event{
			Key:    e.Keysym.Sym,
			Shift:  e.Keysym.Mod&sdl.KMOD_SHIFT != 0,
			Repeat: e.Repeat != 0,
		}
		if e.Type == sdl.KEYDOWN {
			ev.Type = EventKeyDown
		} else {
			ev.Type = EventKeyUp
		}
		i.push(ev)

	case *sdl.MouseMotionEvent:
		// touch input arrives separately as finger events
		if e.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		i.push(Event{Type: EventPointerMove, X: float32(e.X), Y: float32(e.Y)})

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		ev := Event{X: float32(e.X), Y: float32(e.Y), Button: e.Button}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = EventPointerDown
		} else {
			ev.Type = EventPointerUp
		}
		i.push(ev)

	case *sdl.MouseWheelEvent:
		dy := float32(-e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		if dy != 0 {
			i.push(Event{Type: EventWheel, WheelY: dy})
		}

	case *sdl.TouchFingerEvent:
		ev := Event{
			X:       e.X * float32(i.width),
			Y:       e.Y * float32(i.height),
			Button:  sdl.BUTTON_LEFT,
			Touch:   true,
			TouchID: int64(e.FingerID),
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			ev.Type = EventPointerDown
		case sdl.FINGERMOTION:
			ev.Type = EventPointerMove
		case sdl.FINGERUP:
			ev.Type = EventPointerUp
		}
		i.push(ev)
	}
	return false
}

func (i *Input) push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
