package cmd

import (
	"github.com/Carmen-Shannon/oxy-fireball/common"
	"github.com/Carmen-Shannon/oxy-fireball/engine"
	"github.com/Carmen-Shannon/oxy-fireball/engine/camera"
	"github.com/Carmen-Shannon/oxy-fireball/engine/params"
	"github.com/Carmen-Shannon/oxy-fireball/engine/window"
)

// bindInput wires camera and parameter controls: left drag orbits, right drag pans, scroll zooms,
// arrow keys pan while held and the parameter keys mutate the store.
//
// Parameters:
//   - eng: the engine instance providing window callbacks and the frame callback
//   - cam: the camera to control
//   - store: the parameter store key bindings write to
//   - live: the running speed the speed keys step from
func bindInput(eng engine.Engine, cam camera.Camera, store *params.Store, live params.SpeedFunc) {
	keys := params.DefaultKeyMap(live)
	keyState := make(map[uint32]bool)
	ctrl := cam.Controller()

	eng.Window().SetKeyDownCallback(func(keyCode uint32) {
		keyState[keyCode] = true
		store.HandleKey(keys, keyCode)
	})

	eng.Window().SetKeyUpCallback(func(keyCode uint32) {
		keyState[keyCode] = false
	})

	var (
		orbiting, panning bool
		lastX, lastY      int32
	)

	eng.Window().SetMouseDownCallback(func(button window.MouseButton, x, y int32) {
		switch button {
		case window.MouseButtonLeft:
			orbiting = true
		case window.MouseButtonRight:
			panning = true
		}
		lastX, lastY = x, y
	})

	eng.Window().SetMouseUpCallback(func(button window.MouseButton, _, _ int32) {
		switch button {
		case window.MouseButtonLeft:
			orbiting = false
		case window.MouseButtonRight:
			panning = false
		}
	})

	eng.Window().SetMouseMoveCallback(func(x, y int32) {
		dx := float32(x - lastX)
		dy := float32(y - lastY)
		lastX, lastY = x, y
		if orbiting {
			ctrl.Rotate(-dx, dy)
		}
		if panning {
			ctrl.PanRight(-dx)
			ctrl.PanUp(dy)
		}
	})

	eng.Window().SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})

	eng.SetFrameCallback(func(_ float32) {
		if keyState[common.KeyLeft] {
			ctrl.PanRight(-1)
		}
		if keyState[common.KeyRight] {
			ctrl.PanRight(1)
		}
		if keyState[common.KeyUp] {
			ctrl.PanUp(1)
		}
		if keyState[common.KeyDown] {
			ctrl.PanUp(-1)
		}
	})
}
