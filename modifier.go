package alfred

// Modifier identifies a keyboard modifier key held while actioning a result.
//
// Alfred does not support modifier combinations; each variant is keyed by a
// single modifier.
type Modifier string

const (
	// ModCmd is the command key.
	ModCmd Modifier = "cmd"
	// ModAlt is the option/alt key.
	ModAlt Modifier = "alt"
	// ModCtrl is the control key.
	ModCtrl Modifier = "ctrl"
	// ModShift is the shift key.
	ModShift Modifier = "shift"
	// ModFn is the fn key.
	ModFn Modifier = "fn"
)

// Modifiers returns all supported modifiers in serialization order.
func Modifiers() []Modifier {
	return []Modifier{ModCmd, ModAlt, ModCtrl, ModShift, ModFn}
}

func (m Modifier) known() bool {
	switch m {
	case ModCmd, ModAlt, ModCtrl, ModShift, ModFn:
		return true
	default:
		return false
	}
}

// ModData holds the per-modifier overrides of an Item. Nil fields leave the
// corresponding item field untouched.
type ModData struct {
	// Subtitle replaces the item subtitle while the modifier is held.
	Subtitle *string
	// Arg replaces the item arg while the modifier is held.
	Arg *string
	// Valid replaces the item validity while the modifier is held.
	Valid *bool
	// Icon replaces the item icon while the modifier is held. JSON output
	// only; the legacy XML format has no per-modifier icons.
	Icon *Icon
}

// IsZero reports whether no override is set.
func (d ModData) IsZero() bool {
	return d.Subtitle == nil && d.Arg == nil && d.Valid == nil && d.Icon == nil
}
