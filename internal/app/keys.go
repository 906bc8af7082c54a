package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/engine/input"
	"github.com/Faultbox/dentview/internal/interaction"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/internal/viewer"
)

// coarseSteps is the step multiplier while Shift is held.
const coarseSteps = 10

func (a *App) handleKey(ev input.Event) {
	steps := 1
	if ev.Shift {
		steps = coarseSteps
	}
	id := a.selected
	if ev.Repeat && isToggle(ev.Key) {
		return
	}

	var cmd viewer.Command
	switch ev.Key {
	case sdl.K_ESCAPE:
		a.running = false
	case sdl.K_F12:
		a.screenshot = true
	case sdl.K_h:
		a.showHitRegions = !a.showHitRegions
	case sdl.K_c:
		next := a.viewer.Policy().Next()
		if err := a.viewer.SetPolicy(next); err != nil {
			a.log.Error("switching policy", zap.Error(err))
		}

	case sdl.K_1, sdl.K_2, sdl.K_3, sdl.K_4, sdl.K_5, sdl.K_6, sdl.K_7, sdl.K_8, sdl.K_9:
		if n := int(ev.Key - sdl.K_1); n < a.viewer.Models() {
			a.selected = scene.ModelID(n)
		}
	case sdl.K_k:
		a.light = viewer.KeyLight
	case sdl.K_f:
		a.light = viewer.FillLight

	case sdl.K_v:
		cmd = viewer.ToggleVisible{Model: id}
	case sdl.K_LEFTBRACKET:
		cmd = viewer.StepOpacity{Model: id, Steps: -steps}
	case sdl.K_RIGHTBRACKET:
		cmd = viewer.StepOpacity{Model: id, Steps: steps}
	case sdl.K_r, sdl.K_g, sdl.K_b:
		cmd = viewer.StepChannel{Model: id, Channel: channelFor(ev.Key), Steps: channelSteps(ev.Shift)}
	case sdl.K_MINUS:
		cmd = viewer.StepIntensity{Steps: -steps}
	case sdl.K_EQUALS:
		cmd = viewer.StepIntensity{Steps: steps}
	case sdl.K_LEFT:
		cmd = viewer.StepLightAxis{Light: a.light, Axis: 0, Steps: -steps}
	case sdl.K_RIGHT:
		cmd = viewer.StepLightAxis{Light: a.light, Axis: 0, Steps: steps}
	case sdl.K_DOWN:
		cmd = viewer.StepLightAxis{Light: a.light, Axis: 1, Steps: -steps}
	case sdl.K_UP:
		cmd = viewer.StepLightAxis{Light: a.light, Axis: 1, Steps: steps}
	case sdl.K_PAGEDOWN:
		cmd = viewer.StepLightAxis{Light: a.light, Axis: 2, Steps: -steps}
	case sdl.K_PAGEUP:
		cmd = viewer.StepLightAxis{Light: a.light, Axis: 2, Steps: steps}
	}

	if cmd == nil {
		return
	}
	if err := a.viewer.Apply(cmd); err != nil {
		a.log.Warn("control change rejected", zap.Error(err))
	}
}

// isToggle reports whether key flips a state, so holding it must not
// repeat.
func isToggle(key sdl.Keycode) bool {
	switch key {
	case sdl.K_v, sdl.K_h, sdl.K_c, sdl.K_F12:
		return true
	}
	return false
}

func channelFor(key sdl.Keycode) viewer.Channel {
	switch key {
	case sdl.K_g:
		return viewer.Green
	case sdl.K_b:
		return viewer.Blue
	default:
		return viewer.Red
	}
}

// channelSteps raises a channel, or lowers it with Shift held.
func channelSteps(shift bool) int {
	if shift {
		return -1
	}
	return 1
}

func pointerButton(b uint8) camera.Button {
	switch b {
	case sdl.BUTTON_RIGHT:
		return camera.ButtonSecondary
	case sdl.BUTTON_MIDDLE:
		return camera.ButtonMiddle
	default:
		return camera.ButtonPrimary
	}
}

func pointerEvent(ev input.Event) interaction.PointerEvent {
	return interaction.PointerEvent{
		X:       ev.X,
		Y:       ev.Y,
		Button:  pointerButton(ev.Button),
		Touch:   ev.Touch,
		TouchID: ev.TouchID,
	}
}
