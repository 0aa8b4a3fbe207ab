package input

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PointerEvent is one pointer motion step. Drags are measured from
// StartPosition to EndPosition of a single event, not from the press point.
type PointerEvent struct {
	StartPosition mgl64.Vec2
	EndPosition   mgl64.Vec2
}

// Handler receives left-button pointer events.
type Handler interface {
	PointerDown(p mgl64.Vec2)
	PointerUp(p mgl64.Vec2)
	PointerMove(ev PointerEvent)
}

type subscription struct {
	id      int
	handler Handler
}

// Tracker turns polled cursor and button state into pointer events, one
// Update call per frame.
type Tracker struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	primed   bool
	nextID   int
	handlers []subscription
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Subscribe registers h and returns a function that removes it. Calling
// the cancel function more than once is harmless.
func (t *Tracker) Subscribe(h Handler) (cancel func()) {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, subscription{id: id, handler: h})
	return func() {
		for i, s := range t.handlers {
			if s.id == id {
				t.handlers = append(t.handlers[:i:i], t.handlers[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribed handlers.
func (t *Tracker) Len() int {
	return len(t.handlers)
}

// Update records the cursor position and left button state. Motion is
// dispatched before the button transition of the same frame.
func (t *Tracker) Update(x, y float64, leftDown bool) {
	prev := mgl64.Vec2{t.MouseX, t.MouseY}
	cur := mgl64.Vec2{x, y}

	if t.primed {
		t.MouseDeltaX = x - t.MouseX
		t.MouseDeltaY = y - t.MouseY
	} else {
		t.MouseDeltaX, t.MouseDeltaY = 0, 0
	}
	t.MouseX, t.MouseY = x, y

	if t.primed && prev != cur {
		ev := PointerEvent{StartPosition: prev, EndPosition: cur}
		t.each(func(h Handler) { h.PointerMove(ev) })
	}
	t.primed = true

	t.JustPressed = false
	t.JustReleased = false
	if leftDown {
		if !t.Pressed {
			t.JustPressed = true
			t.each(func(h Handler) { h.PointerDown(cur) })
		}
		t.Pressed = true
	} else {
		if t.Pressed {
			t.JustReleased = true
			t.each(func(h Handler) { h.PointerUp(cur) })
		}
		t.Pressed = false
	}
}

func (t *Tracker) each(fn func(h Handler)) {
	// handlers may unsubscribe while being called
	snapshot := append([]subscription(nil), t.handlers...)
	for _, s := range snapshot {
		fn(s.handler)
	}
}
