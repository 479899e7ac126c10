package params

import "github.com/Carmen-Shannon/oxy-fireball/common"

// Step sizes applied by the default key bindings.
const (
	SpeedStep = 0.05
	ShakeStep = 0.05
)

// Binding mutates the controls in response to a key press.
type Binding func(c *Controls)

// KeyMap maps virtual key codes to bindings.
type KeyMap map[uint32]Binding

// SpeedFunc reports the speed the effect is currently running at.
type SpeedFunc func() float32

// DefaultKeyMap returns the stock keyboard layout:
//
//	- / =    speed down / up
//	1 / 2    base tessellation down / up
//	3 / 4    rim tessellation down / up
//	5 / 6    vortex tessellation down / up
//	L        toggle the rim
//	V        toggle the vortex
//	X / S    shake down / up
//	C        swap primary and secondary colour
//	R        reload the scene
//
// The speed keys step from live when it is set, since an automatic ramp moves the running
// speed away from the last manually chosen one.
//
// Parameters:
//   - live: the running speed source, or nil to step from Controls.Speed
//
// Returns:
//   - KeyMap: the bindings
func DefaultKeyMap(live SpeedFunc) KeyMap {
	stepSpeed := func(delta float32) Binding {
		return func(c *Controls) {
			from := c.Speed
			if live != nil {
				from = live()
			}
			c.Speed = from + delta
			c.SpeedEdits++
		}
	}
	return KeyMap{
		common.KeyMinus: stepSpeed(-SpeedStep),
		common.KeyEqual: stepSpeed(SpeedStep),
		common.Key1:     func(c *Controls) { c.BaseTessellation-- },
		common.Key2:     func(c *Controls) { c.BaseTessellation++ },
		common.Key3:     func(c *Controls) { c.RimTessellation-- },
		common.Key4:     func(c *Controls) { c.RimTessellation++ },
		common.Key5:     func(c *Controls) { c.VortexTessellation-- },
		common.Key6:     func(c *Controls) { c.VortexTessellation++ },
		common.KeyL:     func(c *Controls) { c.ShowRim = !c.ShowRim },
		common.KeyV:     func(c *Controls) { c.ShowVortex = !c.ShowVortex },
		common.KeyX:     func(c *Controls) { c.Shake -= ShakeStep },
		common.KeyS:     func(c *Controls) { c.Shake += ShakeStep },
		common.KeyC: func(c *Controls) {
			c.PrimaryColor, c.SecondaryColor = c.SecondaryColor, c.PrimaryColor
		},
		common.KeyR: func(c *Controls) { c.Reload++ },
	}
}

// HandleKey applies the binding for keyCode, if any.
//
// Parameters:
//   - keys: the key map to look the code up in
//   - keyCode: the pressed virtual key
//
// Returns:
//   - bool: true if a binding was applied
func (s *Store) HandleKey(keys KeyMap, keyCode uint32) bool {
	b, ok := keys[keyCode]
	if !ok {
		return false
	}
	s.Update(b)
	return true
}
