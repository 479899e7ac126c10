// Package params holds the live-tunable fireball controls and the store the frame loop reads them from.
package params

// Tessellation limits per shape.
const (
	MaxBaseTessellation   = 8
	MaxRimTessellation    = 7
	MaxVortexTessellation = 7
)

// Controls is the flat set of user-facing fireball parameters.
// Colours carry RGB channels in [0, 255] and alpha in [0, 1].
type Controls struct {
	Speed              float32    `toml:"speed"`
	BaseTessellation   int        `toml:"base_tessellation"`
	RimTessellation    int        `toml:"rim_tessellation"`
	VortexTessellation int        `toml:"vortex_tessellation"`
	ShowRim            bool       `toml:"show_rim"`
	ShowVortex         bool       `toml:"show_vortex"`
	PrimaryColor       [4]float32 `toml:"primary_color"`
	SecondaryColor     [4]float32 `toml:"secondary_color"`
	Shake              float32    `toml:"shake"`

	// Reload is bumped every time a scene reload is requested. It is never persisted.
	Reload uint64 `toml:"-"`

	// SpeedEdits counts speed key presses so a step that lands on the previous value still
	// registers as a manual change. It is never persisted.
	SpeedEdits uint64 `toml:"-"`
}

// DefaultControls returns the controls the fireball starts with.
//
// Returns:
//   - Controls: the default parameter set
func DefaultControls() Controls {
	return Controls{
		Speed:              0,
		BaseTessellation:   5,
		RimTessellation:    4,
		VortexTessellation: 4,
		ShowRim:            true,
		ShowVortex:         true,
		PrimaryColor:       [4]float32{255, 80, 0, 1},
		SecondaryColor:     [4]float32{255, 220, 0, 1},
		Shake:              0.2,
	}
}

// Normalize clamps every control into its valid range.
//
// Returns:
//   - Controls: a copy with speed and shake in [0, 1], tessellations within their limits,
//     colour channels in [0, 255] and alpha in [0, 1]
func (c Controls) Normalize() Controls {
	c.Speed = clampf(c.Speed, 0, 1)
	c.Shake = clampf(c.Shake, 0, 1)
	c.BaseTessellation = clampi(c.BaseTessellation, 0, MaxBaseTessellation)
	c.RimTessellation = clampi(c.RimTessellation, 0, MaxRimTessellation)
	c.VortexTessellation = clampi(c.VortexTessellation, 0, MaxVortexTessellation)
	c.PrimaryColor = clampColor(c.PrimaryColor)
	c.SecondaryColor = clampColor(c.SecondaryColor)
	return c
}

func clampColor(c [4]float32) [4]float32 {
	for i := 0; i < 3; i++ {
		c[i] = clampf(c[i], 0, 255)
	}
	c[3] = clampf(c[3], 0, 1)
	return c
}

func clampf(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

func clampi(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
