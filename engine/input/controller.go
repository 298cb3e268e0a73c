// Package input translates pointer events from a window system into manipulator grab and
// zoom calls.
package input

import (
	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/rs/zerolog"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary   Button = common.MouseButtonLeft
	ButtonSecondary Button = common.MouseButtonRight
	ButtonMiddle    Button = common.MouseButtonMiddle
)

// Modifier is a bit set of keyboard modifiers held during a pointer event.
type Modifier int

const (
	ModShift   Modifier = common.ModShift
	ModControl Modifier = common.ModControl
	ModAlt     Modifier = common.ModAlt
	ModSuper   Modifier = common.ModSuper
)

// Controller routes pointer events to a Manipulator.
// The primary button rotates (orbit) or pans (map), or strafes while Shift is held.
// The secondary and middle buttons always strafe. Only one drag is active at a time and
// only the button that started it can end it.
type Controller interface {
	// PointerDown starts a drag with the given button.
	// Ignored while another drag is active or for unmapped buttons.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//   - button: the pressed button
	//   - mods: modifier keys held during the press
	PointerDown(x, y int, button Button, mods Modifier)

	// PointerMove updates the active drag. Moves outside a drag only track the pointer.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	PointerMove(x, y int)

	// PointerUp ends the active drag if button is the one that started it.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//   - button: the released button
	PointerUp(x, y int, button Button)

	// Scroll zooms toward the pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in window pixels
	//   - delta: scroll amount; positive zooms in
	Scroll(x, y int, delta float32)

	// Resize updates the manipulator viewport. Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width, height: new framebuffer size in pixels
	Resize(width, height int)

	// Manipulator returns the manipulator receiving the events.
	//
	// Returns:
	//   - manipulator.Manipulator: the driven manipulator
	Manipulator() manipulator.Manipulator

	// SetManipulator swaps the driven manipulator, ending any active drag on the old one.
	//
	// Parameters:
	//   - m: the new manipulator
	SetManipulator(m manipulator.Manipulator)

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between an accepted PointerDown and its PointerUp
	Dragging() bool
}

// controller is the implementation of the Controller interface.
type controller struct {
	manip       manipulator.Manipulator
	logger      zerolog.Logger
	flipY       bool
	scrollScale float32

	dragging   bool
	dragButton Button
}

var _ Controller = &controller{}

// NewController creates a Controller driving m.
//
// Parameters:
//   - m: the manipulator to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the configured controller
func NewController(m manipulator.Manipulator, options ...ControllerOption) Controller {
	c := &controller{
		manip:       m,
		logger:      zerolog.Nop(),
		scrollScale: 1,
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "input").Logger()
	return c
}

func (c *controller) PointerDown(x, y int, button Button, mods Modifier) {
	if c.dragging {
		c.logger.Debug().Int("button", int(button)).Msg("ignoring press during drag")
		return
	}

	var strafe bool
	switch button {
	case ButtonPrimary:
		strafe = mods&ModShift != 0
	case ButtonSecondary, ButtonMiddle:
		strafe = true
	default:
		return
	}

	c.dragging = true
	c.dragButton = button
	c.manip.GrabBegin(x, c.windowY(y), strafe)
}

func (c *controller) PointerMove(x, y int) {
	if !c.dragging {
		return
	}
	c.manip.GrabUpdate(x, c.windowY(y))
}

func (c *controller) PointerUp(x, y int, button Button) {
	if !c.dragging || button != c.dragButton {
		return
	}
	c.manip.GrabUpdate(x, c.windowY(y))
	c.manip.GrabEnd()
	c.dragging = false
}

func (c *controller) Scroll(x, y int, delta float32) {
	if delta == 0 {
		return
	}
	c.manip.Zoom(x, c.windowY(y), delta*c.scrollScale)
}

func (c *controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		c.logger.Debug().Int("width", width).Int("height", height).Msg("ignoring empty viewport")
		return
	}
	cfg := c.manip.Config()
	cfg.Viewport = [2]int{width, height}
	c.manip.SetConfig(cfg)
}

func (c *controller) Manipulator() manipulator.Manipulator {
	return c.manip
}

func (c *controller) SetManipulator(m manipulator.Manipulator) {
	if c.dragging {
		c.manip.GrabEnd()
		c.dragging = false
	}
	c.manip = m
}

func (c *controller) Dragging() bool {
	return c.dragging
}

// windowY converts a window row into the manipulator's bottom-up pixel rows when flipY is set.
func (c *controller) windowY(y int) int {
	if !c.flipY {
		return y
	}
	return c.manip.Config().Viewport[1] - 1 - y
}
