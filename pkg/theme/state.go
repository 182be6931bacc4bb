// Package theme manages the light/dark preference of the page: which mode is
// rendered, how the dark palette is applied and reverted, and how the choice
// is persisted between visits.
package theme

// Mode is the persisted theme preference.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts the exact persisted spelling of a mode.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// State is the theme currently rendered on a page.
type State struct {
	Mode Mode
}

// DefaultState is the stylesheet theme.
func DefaultState() State {
	return State{Mode: Light}
}

// IsDark reports whether the dark palette is active.
func (s State) IsDark() bool {
	return s.Mode == Dark
}

// Toggled returns the opposite state.
func (s State) Toggled() State {
	if s.IsDark() {
		return State{Mode: Light}
	}
	return State{Mode: Dark}
}
