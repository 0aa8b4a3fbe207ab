package gizmo

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo/rt/core"
	"github.com/gekko3d/gizmo/rt/geom"
	"github.com/gekko3d/gizmo/rt/handle"
	"github.com/gekko3d/gizmo/rt/input"
)

type Option func(*Controller)

func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// Controller drives one gizmo at a time. All methods must be called from
// the host's input thread.
type Controller struct {
	host    Host
	cfg     Config
	log     Logger
	session *Session
}

var _ input.Handler = (*Controller)(nil)

func NewController(host Host, opts ...Option) (*Controller, error) {
	if host.Scene == nil || host.Camera == nil {
		return nil, ErrNoHost
	}
	c := &Controller{
		host: host,
		cfg:  DefaultConfig(),
		log:  NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Config() Config { return c.cfg }

// Session returns the attached session, or nil.
func (c *Controller) Session() *Session { return c.session }

func (c *Controller) State() State {
	if c.session == nil {
		return Idle
	}
	return c.session.State()
}

// Attach builds a fresh gizmo around target, replacing any previous one.
func (c *Controller) Attach(target Target) error {
	if target == nil {
		return ErrInvalidTarget
	}
	c.Detach()

	s, err := newSession(c.host, c.cfg, target)
	if err != nil {
		return err
	}
	if c.host.Input != nil {
		s.cancelInput = c.host.Input.Subscribe(c)
	}
	c.session = s
	c.log.Infof("gizmo %s attached at %v radius %.3f", s.ID, s.Position, s.Radius)
	return nil
}

// Detach removes the gizmo visuals and input subscription. It is a no-op
// when nothing is attached.
func (c *Controller) Detach() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	if s.cancelInput != nil {
		s.cancelInput()
		s.cancelInput = nil
	}
	s.removeVisuals(c.host.Scene)
	if s.rotationLocked {
		c.unlockCamera(s)
	}
	c.log.Infof("gizmo %s detached", s.ID)
}

func (c *Controller) PointerDown(p mgl64.Vec2) {
	s := c.session
	if s == nil {
		return
	}
	s.pressed = true
	s.activate(c.pick(s, p))

	h := s.Active()
	if h == nil {
		return
	}
	c.lockCamera(s)
	c.log.Debugf("gizmo %s: %s drag on %s", s.ID, h.Kind, h.ID)
}

func (c *Controller) PointerMove(ev input.PointerEvent) {
	s := c.session
	if s == nil {
		return
	}
	if !s.pressed {
		s.activate(c.pick(s, ev.EndPosition))
		return
	}

	h := s.Active()
	if h == nil {
		return
	}
	switch h.Kind {
	case handle.Translation:
		c.dragTranslation(s, h, ev)
	case handle.Rotation:
		c.dragRotation(s, h, ev)
	}
}

// PointerUp ends any gesture. The camera is released even when no drag was
// in progress.
func (c *Controller) PointerUp(p mgl64.Vec2) {
	s := c.session
	if s == nil {
		c.host.setRotationEnabled(true)
		return
	}
	dragged := s.State() == Dragging
	s.pressed = false
	s.restAll()
	c.unlockCamera(s)
	if dragged {
		c.reportPosition(s)
	}
}

// pick maps the handle under p to its index. While a ring is active the
// auxiliary sphere counts as that ring, since the sphere covers its inner
// half.
func (c *Controller) pick(s *Session, p mgl64.Vec2) int {
	id, ok := c.host.Scene.PickAtScreenPoint(p)
	if !ok {
		return -1
	}
	if id == handle.IDAuxiliarySphere {
		if h := s.Active(); h != nil && h.Kind == handle.Rotation {
			return s.active
		}
	}
	return s.handleIndex(id)
}

func (c *Controller) dragTranslation(s *Session, h *handle.Handle, ev input.PointerEvent) {
	camera := c.host.Camera.CameraPosition()
	start, err := geom.PlanePositionForTranslation(s.Position, camera, c.host.Camera.RayThroughScreenPoint(ev.StartPosition), h.Direction)
	if err != nil {
		c.skip(s, err)
		return
	}
	end, err := geom.PlanePositionForTranslation(s.Position, camera, c.host.Camera.RayThroughScreenPoint(ev.EndPosition), h.Direction)
	if err != nil {
		c.skip(s, err)
		return
	}

	length := h.Direction.Dot(end.Sub(start))
	if length == 0 {
		return
	}
	s.translate(h.Unit, length)
}

func (c *Controller) dragRotation(s *Session, h *handle.Handle, ev input.PointerEvent) {
	if c.cfg.StrictRotationPick {
		id, _ := c.host.Scene.PickAtScreenPoint(ev.EndPosition)
		if !h.MatchesID(id) && id != handle.IDAuxiliarySphere {
			return
		}
	}

	start, err := geom.PlanePositionForRotation(s.Position, c.host.Camera.RayThroughScreenPoint(ev.StartPosition), h.Direction)
	if err != nil {
		c.skip(s, err)
		return
	}
	end, err := geom.PlanePositionForRotation(s.Position, c.host.Camera.RayThroughScreenPoint(ev.EndPosition), h.Direction)
	if err != nil {
		c.skip(s, err)
		return
	}

	angle := geom.SignedRingAngle(start, end, h.Direction, c.cfg.SignThresholdDegrees)
	if angle == 0 {
		return
	}
	s.rotate(h.Axis.Rotation(angle), h.Direction, angle)
	h.AccumulateAngle(mgl64.RadToDeg(angle))
}

func (c *Controller) skip(s *Session, err error) {
	if errors.Is(err, geom.ErrDegenerateRay) {
		c.log.Debugf("gizmo %s: skipping move: %v", s.ID, err)
		return
	}
	c.log.Warnf("gizmo %s: skipping move: %v", s.ID, err)
}

func (c *Controller) lockCamera(s *Session) {
	s.rotationLocked = true
	c.host.setRotationEnabled(false)
}

func (c *Controller) unlockCamera(s *Session) {
	s.rotationLocked = false
	c.host.setRotationEnabled(true)
}

func (c *Controller) reportPosition(s *Session) {
	c.log.Infof("gizmo %s: target at %v", s.ID, s.Position)
	if s.Frame == mgl64.Ident4() {
		return
	}
	if carto, ok := core.CartographicFromCartesian(s.Position); ok {
		c.log.Infof("gizmo %s: target at %s", s.ID, carto)
	}
}
