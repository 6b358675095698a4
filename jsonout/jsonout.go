// Package jsonout writes script filter feedback in the JSON format used by
// Alfred 3 and later.
//
// Optional item fields are omitted from the output entirely when unset, and
// "valid" is only written when false, so a bare item serializes to just its
// title.
package jsonout

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alfredtools/go-alfred"
)

// WriteItems writes a complete JSON document wrapping the items to w.
func WriteItems(w io.Writer, items []alfred.Item) error {
	return NewBuilder(items...).Write(w)
}

// Builder assembles a feedback document: the item list plus the optional
// top-level variables and rerun interval.
type Builder struct {
	items     []alfred.Item
	variables map[string]string
	rerun     float64
}

// NewBuilder returns a Builder wrapping the given items.
func NewBuilder(items ...alfred.Item) *Builder {
	return &Builder{items: items}
}

// Item appends an item to the document.
func (b *Builder) Item(item alfred.Item) *Builder {
	b.items = append(b.items, item)

	return b
}

// Variable sets a top-level workflow variable, passed to downstream objects
// regardless of which item is actioned.
func (b *Builder) Variable(key, value string) *Builder {
	if b.variables == nil {
		b.variables = make(map[string]string)
	}
	b.variables[key] = value

	return b
}

// Rerun asks Alfred to run the script filter again after the given number of
// seconds. Alfred accepts values between 0.1 and 5.0.
func (b *Builder) Rerun(seconds float64) *Builder {
	b.rerun = seconds

	return b
}

// Write writes the complete JSON document to w.
func (b *Builder) Write(w io.Writer) error {
	doc := document{
		Items:     make([]itemJSON, 0, len(b.items)),
		Variables: b.variables,
		Rerun:     b.rerun,
	}
	for _, item := range b.items {
		doc.Items = append(doc.Items, encodeItem(item))
	}

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to write feedback document: %w", err)
	}

	return nil
}

// document is the wire form of the feedback root object.
type document struct {
	Items     []itemJSON        `json:"items"`
	Variables map[string]string `json:"variables,omitempty"`
	Rerun     float64           `json:"rerun,omitempty"`
}

type itemJSON struct {
	UID          string             `json:"uid,omitempty"`
	Title        string             `json:"title"`
	Subtitle     string             `json:"subtitle,omitempty"`
	Arg          string             `json:"arg,omitempty"`
	Autocomplete string             `json:"autocomplete,omitempty"`
	Type         string             `json:"type,omitempty"`
	Valid        *bool              `json:"valid,omitempty"`
	Icon         *iconJSON          `json:"icon,omitempty"`
	Text         *textJSON          `json:"text,omitempty"`
	QuicklookURL string             `json:"quicklookurl,omitempty"`
	Variables    map[string]string  `json:"variables,omitempty"`
	Mods         map[string]modJSON `json:"mods,omitempty"`
}

type iconJSON struct {
	Type string `json:"type,omitempty"`
	Path string `json:"path"`
}

type textJSON struct {
	Copy      string `json:"copy,omitempty"`
	LargeType string `json:"largetype,omitempty"`
}

type modJSON struct {
	Subtitle *string   `json:"subtitle,omitempty"`
	Arg      *string   `json:"arg,omitempty"`
	Valid    *bool     `json:"valid,omitempty"`
	Icon     *iconJSON `json:"icon,omitempty"`
}

func encodeItem(item alfred.Item) itemJSON {
	out := itemJSON{
		UID:          item.UID,
		Title:        item.Title,
		Subtitle:     item.Subtitle,
		Arg:          item.Arg,
		Autocomplete: item.Autocomplete,
		Type:         string(item.Type),
		QuicklookURL: item.QuicklookURL,
		Variables:    item.Variables,
		Icon:         encodeIcon(item.Icon),
	}

	// Valid defaults to true; only the false case is written out.
	if !item.Valid {
		valid := false
		out.Valid = &valid
	}

	if item.CopyText != "" || item.LargeTypeText != "" {
		out.Text = &textJSON{Copy: item.CopyText, LargeType: item.LargeTypeText}
	}

	if len(item.Mods) > 0 {
		out.Mods = make(map[string]modJSON, len(item.Mods))
		for mod, data := range item.Mods {
			out.Mods[string(mod)] = modJSON{
				Subtitle: data.Subtitle,
				Arg:      data.Arg,
				Valid:    data.Valid,
				Icon:     encodeIcon(data.Icon),
			}
		}
	}

	return out
}

func encodeIcon(icon *alfred.Icon) *iconJSON {
	if icon == nil {
		return nil
	}

	return &iconJSON{Type: string(icon.Source), Path: icon.Value}
}
