package alfred

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidItem is returned by ItemBuilder.Build and Item.Validate when a
// required text field is empty. Use errors.Is to detect it.
var ErrInvalidItem = errors.New("invalid item")

// ItemType hints to Alfred what kind of result an item is.
type ItemType string

const (
	// TypeDefault is the ordinary result type.
	TypeDefault ItemType = ""
	// TypeFile marks the result as a file. Alfred checks that the file
	// exists on disk and hides the result if it does not.
	TypeFile ItemType = "file"
	// TypeFileSkipCheck marks the result as a file but skips the existence
	// check.
	TypeFileSkipCheck ItemType = "file:skipcheck"
)

// Item represents a single script filter result.
//
// Items are assembled with ItemBuilder and are not modified by the
// serializers. The zero value is not a valid item; Title must be set.
type Item struct {
	// Title is the primary text shown for the result. Required.
	Title string
	// Subtitle is shown below the title. Modifiers may override it.
	Subtitle string
	// UID identifies the result across runs. When set it must be unique
	// among items; Alfred uses it to learn result ordering. When blank,
	// results keep their insertion order.
	UID string
	// Arg is the value passed to the next part of the workflow when the
	// item is actioned. Modifiers may override it.
	Arg string
	// Autocomplete is placed into the search field when the user presses
	// tab, or when an invalid item is actioned.
	Autocomplete string
	// Valid reports whether actioning the result passes Arg on. Invalid
	// items populate the search field with Autocomplete instead.
	Valid bool
	// Icon is the result icon. Nil means Alfred shows the workflow icon.
	Icon *Icon
	// Type is the result type hint.
	Type ItemType
	// QuicklookURL is previewed when the user presses shift or cmd+Y.
	QuicklookURL string
	// CopyText is placed on the clipboard when the user presses cmd+C.
	CopyText string
	// LargeTypeText is displayed in large type when the user presses cmd+L.
	LargeTypeText string
	// Variables are passed to downstream workflow objects alongside Arg.
	// JSON output only.
	Variables map[string]string
	// Mods overrides subtitle, arg, validity and icon per held modifier key.
	Mods map[Modifier]ModData
}

// NewItem returns a minimal valid Item with the given title.
func NewItem(title string) Item {
	return Item{Title: title, Valid: true}
}

// Validate checks the required text fields. The argument is only required
// when requireArg is true; Alfred accepts items without one.
func (it Item) Validate(requireArg bool) error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidItem)
	}
	if requireArg && strings.TrimSpace(it.Arg) == "" {
		return fmt.Errorf("%w: arg must not be empty", ErrInvalidItem)
	}
	for mod := range it.Mods {
		if !mod.known() {
			return fmt.Errorf("%w: unknown modifier %q", ErrInvalidItem, string(mod))
		}
	}

	return nil
}
