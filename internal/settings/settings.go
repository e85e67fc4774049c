// Package settings owns the user-configurable toggles of the game.
// It loads them from a persistent key-value backend when the settings
// screen appears, flips them on user action with write-through persistence,
// and flushes them again when the screen is dismissed.
package settings

// Key identifies a persisted setting in the key-value backend.
type Key = uint32

// Persistence keys. Values are fixed forever once shipped.
const (
	KeyAccelerometerControl Key = 1
)

// Settings is the in-memory settings record.
type Settings struct {
	// AccelerometerControl selects motion-based control instead of buttons.
	AccelerometerControl bool
}

// Defaults returns the compile-time default settings.
func Defaults() Settings {
	return Settings{
		AccelerometerControl: false,
	}
}

// Row is the render data for one toggle row of the settings list.
type Row struct {
	Title    string
	Subtitle string // "On" or "Off"
	On       bool
}

// toggle describes one boolean row in the settings list.
// Adding a setting means adding a field to Settings and an entry here.
type toggle struct {
	key   Key
	title string
	field func(s *Settings) *bool
}

var toggles = []toggle{
	{
		key:   KeyAccelerometerControl,
		title: "Accelerometer",
		field: func(s *Settings) *bool { return &s.AccelerometerControl },
	},
}

// RowAccelerometerControl is the list index of the accelerometer toggle.
const RowAccelerometerControl = 0

// RowCount returns the number of toggle rows in the settings list.
func RowCount() int {
	return len(toggles)
}

// encodeBool serializes a toggle as a single byte.
func encodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// decodeBool parses a single-byte toggle payload.
// ok is false for payloads of the wrong size or with an unknown value.
func decodeBool(data []byte) (v bool, ok bool) {
	if len(data) != 1 {
		return false, false
	}
	switch data[0] {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
