package brain

import (
	"credable/internal/model"
	"math"
	"sync"
	"time"
)

// Camera choreography constants
const (
	orbitRadius     = 120
	dragSensitivity = 0.005
	minPhi          = 0.1
	maxPhi          = math.Pi - 0.1
	nodeZoomOffset  = 25
	layerZoomOffset = 35
	animDuration    = 1500 * time.Millisecond
	driftPerSecond  = 0.6 // drift clock advance; 0.01 per frame at 60fps

	idleEmissive     = 0.3
	layerEmissive    = 0.8
	selectedEmissive = 1.0
)

var (
	homeCamera = model.Vec3{X: 60, Y: 40, Z: 100}
	origin     = model.Vec3{}
)

// IntentKind enumerates the pointer and UI events the scene reacts to
type IntentKind int

const (
	IntentDragStart IntentKind = iota
	IntentDragMove
	IntentDragEnd
	IntentClickNode
	IntentTourNext
	IntentTourEnd
	IntentClosePopup
)

// Intent is an input event waiting for the next frame
type Intent struct {
	Kind IntentKind
	X, Y float64 // pointer position for drag intents
	Node NodeRef // target of IntentClickNode
}

// Highlight marks what is lit. Layer -1 means nothing; Node -1 means the
// whole layer.
type Highlight struct {
	Layer int `json:"layer"`
	Node  int `json:"node"`
}

// State is the complete interaction state of the scene
type State struct {
	Theta      float64       `json:"theta"`
	Phi        float64       `json:"phi"`
	Dragging   bool          `json:"dragging"`
	TourActive bool          `json:"tourActive"`
	TourStep   int           `json:"tourStep"`
	Selected   *NodeRef      `json:"selected,omitempty"`
	Highlight  Highlight     `json:"highlight"`
	Camera     model.Vec3    `json:"camera"`
	LookAt     model.Vec3    `json:"lookAt"`
	Animating  bool          `json:"animating"`
	Elapsed    time.Duration `json:"elapsed"`

	clock float64
}

type animation struct {
	from, to, lookAt model.Vec3
	elapsed          time.Duration
	onDone           func(s *State)
}

// Controller owns the scene state. Intents may be enqueued from any
// goroutine; state only changes inside Step, which must be called from a
// single goroutine (the frame loop).
type Controller struct {
	layout *Layout

	mu      sync.Mutex
	pending []Intent

	state        State
	dragX, dragY float64
	anim         *animation
}

// NewController starts at the home camera with nothing selected
func NewController(layout *Layout) *Controller {
	return &Controller{
		layout: layout,
		state: State{
			Theta:     0.8,
			Phi:       0.5,
			Highlight: Highlight{Layer: -1, Node: -1},
			Camera:    homeCamera,
			LookAt:    origin,
		},
	}
}

// Enqueue records an intent for the next Step
func (c *Controller) Enqueue(in Intent) {
	c.mu.Lock()
	c.pending = append(c.pending, in)
	c.mu.Unlock()
}

// Step consumes queued intents in arrival order, advances the camera by dt
// and returns a snapshot of the resulting state.
func (c *Controller) Step(dt time.Duration) State {
	c.mu.Lock()
	intents := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, in := range intents {
		c.apply(in)
	}

	s := &c.state
	s.Elapsed += dt
	s.clock += dt.Seconds() * driftPerSecond

	if c.anim != nil {
		c.advance(dt)
	} else if s.Selected == nil && !s.TourActive {
		c.orbit()
	}

	return c.Snapshot()
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	s := c.state
	if s.Selected != nil {
		sel := *s.Selected
		s.Selected = &sel
	}
	return s
}

// Emissive is the base glow of a node under the current highlight
func (c *Controller) Emissive(ref NodeRef) float64 {
	h := c.state.Highlight
	switch {
	case h.Layer != ref.Layer:
		return idleEmissive
	case h.Node == -1:
		return layerEmissive
	case h.Node == ref.Index:
		return selectedEmissive
	}
	return idleEmissive
}

func (c *Controller) apply(in Intent) {
	s := &c.state
	switch in.Kind {
	case IntentDragStart:
		if s.TourActive {
			return
		}
		s.Dragging = true
		c.dragX, c.dragY = in.X, in.Y

	case IntentDragMove:
		if !s.Dragging || s.TourActive {
			return
		}
		s.Theta += (in.X - c.dragX) * dragSensitivity
		s.Phi = math.Max(minPhi, math.Min(maxPhi, s.Phi+(in.Y-c.dragY)*dragSensitivity))
		c.dragX, c.dragY = in.X, in.Y

	case IntentDragEnd:
		s.Dragging = false

	case IntentClickNode:
		if s.TourActive || s.Dragging {
			return
		}
		node, ok := c.layout.Node(in.Node)
		if !ok {
			return
		}
		ref := in.Node
		s.Selected = &ref
		s.Highlight = Highlight{Layer: ref.Layer, Node: ref.Index}
		c.animateTo(node.Position.Add(model.Vec3{Z: nodeZoomOffset}), node.Position, nil)

	case IntentTourNext:
		switch {
		case !s.TourActive:
			s.TourActive = true
			s.TourStep = 0
			s.Dragging = false
			c.goToLayer(0)
		case c.anim != nil:
			// the current leg has to land first
		case s.TourStep+1 >= len(c.layout.Layers):
			s.TourActive = false
		default:
			s.TourStep++
			c.goToLayer(s.TourStep)
		}

	case IntentTourEnd:
		s.TourActive = false

	case IntentClosePopup:
		s.Selected = nil
		if s.TourActive {
			return
		}
		c.animateTo(homeCamera, origin, func(s *State) {
			s.Phi = math.Acos(homeCamera.Y / orbitRadius)
			s.Theta = math.Atan2(homeCamera.Z, homeCamera.X)
		})
	}
}

func (c *Controller) goToLayer(i int) {
	layer := c.layout.Layers[i]
	s := &c.state
	s.Selected = &NodeRef{Layer: i, Index: 0}
	s.Highlight = Highlight{Layer: i, Node: -1}

	target := model.Vec3{Z: layer.Z}
	c.animateTo(target.Add(model.Vec3{Z: layerZoomOffset}), target, nil)
}

func (c *Controller) animateTo(to, lookAt model.Vec3, onDone func(s *State)) {
	c.anim = &animation{
		from:   c.state.Camera,
		to:     to,
		lookAt: lookAt,
		onDone: onDone,
	}
	c.state.Animating = true
}

// advance moves the camera along the current leg with ease-out cubic
func (c *Controller) advance(dt time.Duration) {
	a := c.anim
	s := &c.state
	a.elapsed += dt

	progress := math.Min(float64(a.elapsed)/float64(animDuration), 1)
	eased := 1 - math.Pow(1-progress, 3)
	s.Camera = a.from.Lerp(a.to, eased)
	s.LookAt = a.lookAt

	if progress < 1 {
		return
	}
	s.Camera = a.to
	s.Animating = false
	c.anim = nil
	if a.onDone != nil {
		a.onDone(s)
	}
}

// orbit places the idle camera on its sphere, drifting gently unless the
// user is dragging.
func (c *Controller) orbit() {
	s := &c.state
	theta, phi := s.Theta, s.Phi
	if !s.Dragging {
		theta += math.Sin(s.clock*0.15) * 0.3
		phi += math.Cos(s.clock*0.2) * 0.2
	}
	s.Camera = model.Vec3{
		X: orbitRadius * math.Sin(phi) * math.Cos(theta),
		Y: orbitRadius * math.Cos(phi),
		Z: orbitRadius * math.Sin(phi) * math.Sin(theta),
	}
	s.LookAt = origin
}
