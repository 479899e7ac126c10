package common

// Virtual key codes for the fireball key bindings.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC     = 67 // C key (ASCII)
	KeyL     = 76 // L key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyV     = 86 // V key (ASCII)
	KeyX     = 88 // X key (ASCII)
	KeyMinus = 45 // - key (ASCII)
	KeyEqual = 61 // = key (ASCII)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
)

// Additional non-printable keys
const (
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)
