package alfred

import (
	"maps"

	"github.com/alfredtools/go-alfred/internal/pointer"
)

// ItemBuilder assembles an Item field by field. All setters return the
// builder so calls can be chained; Build validates the result.
type ItemBuilder struct {
	item       Item
	requireArg bool
}

// NewItemBuilder returns a builder for an item with the given title.
func NewItemBuilder(title string) *ItemBuilder {
	return &ItemBuilder{item: NewItem(title)}
}

// Title replaces the item title.
func (b *ItemBuilder) Title(title string) *ItemBuilder {
	b.item.Title = title

	return b
}

// Subtitle sets the default subtitle, used when no modifier is held.
func (b *ItemBuilder) Subtitle(subtitle string) *ItemBuilder {
	b.item.Subtitle = subtitle

	return b
}

// UID sets the unique identifier Alfred uses to learn result ordering.
func (b *ItemBuilder) UID(uid string) *ItemBuilder {
	b.item.UID = uid

	return b
}

// Arg sets the value passed on when the item is actioned.
func (b *ItemBuilder) Arg(arg string) *ItemBuilder {
	b.item.Arg = arg

	return b
}

// RequireArg makes Build reject the item unless a non-empty Arg is set.
func (b *ItemBuilder) RequireArg() *ItemBuilder {
	b.requireArg = true

	return b
}

// Autocomplete sets the text placed in the search field on tab.
func (b *ItemBuilder) Autocomplete(autocomplete string) *ItemBuilder {
	b.item.Autocomplete = autocomplete

	return b
}

// Valid sets whether actioning the result passes Arg on.
func (b *ItemBuilder) Valid(valid bool) *ItemBuilder {
	b.item.Valid = valid

	return b
}

// Type sets the result type hint.
func (b *ItemBuilder) Type(t ItemType) *ItemBuilder {
	b.item.Type = t

	return b
}

// Icon sets the result icon.
func (b *ItemBuilder) Icon(icon Icon) *ItemBuilder {
	b.item.Icon = &icon

	return b
}

// IconPath sets the icon to an image file on disk.
//
// The path is interpreted relative to the workflow directory.
func (b *ItemBuilder) IconPath(path string) *ItemBuilder {
	return b.Icon(ImageIcon(path))
}

// IconFile sets the icon to the icon of the file at path.
func (b *ItemBuilder) IconFile(path string) *ItemBuilder {
	return b.Icon(FileIcon(path))
}

// IconFileType sets the icon to the icon for a file type UTI.
func (b *ItemBuilder) IconFileType(uti string) *ItemBuilder {
	return b.Icon(FileTypeIcon(uti))
}

// QuicklookURL sets the URL previewed via Quick Look.
func (b *ItemBuilder) QuicklookURL(url string) *ItemBuilder {
	b.item.QuicklookURL = url

	return b
}

// CopyText sets the text copied to the clipboard with cmd+C.
func (b *ItemBuilder) CopyText(text string) *ItemBuilder {
	b.item.CopyText = text

	return b
}

// LargeTypeText sets the text displayed as large type with cmd+L.
func (b *ItemBuilder) LargeTypeText(text string) *ItemBuilder {
	b.item.LargeTypeText = text

	return b
}

// Variable sets a workflow variable passed along with the item. JSON output
// only.
func (b *ItemBuilder) Variable(key, value string) *ItemBuilder {
	if b.item.Variables == nil {
		b.item.Variables = make(map[string]string)
	}
	b.item.Variables[key] = value

	return b
}

// Mod replaces all overrides for the given modifier at once.
func (b *ItemBuilder) Mod(mod Modifier, data ModData) *ItemBuilder {
	b.mods()[mod] = data

	return b
}

// ModSubtitle sets the subtitle shown while the given modifier is held.
func (b *ItemBuilder) ModSubtitle(mod Modifier, subtitle string) *ItemBuilder {
	data := b.mods()[mod]
	data.Subtitle = pointer.To(subtitle)
	b.mods()[mod] = data

	return b
}

// ModArg sets the arg passed on while the given modifier is held.
func (b *ItemBuilder) ModArg(mod Modifier, arg string) *ItemBuilder {
	data := b.mods()[mod]
	data.Arg = pointer.To(arg)
	b.mods()[mod] = data

	return b
}

// ModValid sets the validity used while the given modifier is held.
func (b *ItemBuilder) ModValid(mod Modifier, valid bool) *ItemBuilder {
	data := b.mods()[mod]
	data.Valid = pointer.To(valid)
	b.mods()[mod] = data

	return b
}

// ModIcon sets the icon shown while the given modifier is held. JSON output
// only.
func (b *ItemBuilder) ModIcon(mod Modifier, icon Icon) *ItemBuilder {
	data := b.mods()[mod]
	data.Icon = &icon
	b.mods()[mod] = data

	return b
}

// UnsetMod removes all overrides for the given modifier.
func (b *ItemBuilder) UnsetMod(mod Modifier) *ItemBuilder {
	delete(b.item.Mods, mod)

	return b
}

// Build validates the assembled fields and returns the finished Item.
//
// The returned Item does not share state with the builder; the builder may
// be modified and built again.
func (b *ItemBuilder) Build() (Item, error) {
	if err := b.item.Validate(b.requireArg); err != nil {
		return Item{}, err
	}

	item := b.item
	item.Variables = maps.Clone(b.item.Variables)
	item.Mods = nil
	for mod, data := range b.item.Mods {
		// Entries with no overrides left are dropped rather than emitted
		// as empty objects.
		if data.IsZero() {
			continue
		}
		if item.Mods == nil {
			item.Mods = make(map[Modifier]ModData, len(b.item.Mods))
		}
		item.Mods[mod] = data
	}

	return item, nil
}

func (b *ItemBuilder) mods() map[Modifier]ModData {
	if b.item.Mods == nil {
		b.item.Mods = make(map[Modifier]ModData)
	}

	return b.item.Mods
}
