// Package xmlout writes script filter feedback in the legacy XML format
// used by Alfred 2.
//
// Unless Alfred 2 compatibility is specifically needed, the jsonout package
// should be used instead. Modifier variants and workflow variables are JSON
// features and do not appear in this format.
package xmlout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alfredtools/go-alfred"
)

// ErrClosed is returned when writing to a Writer after Close.
var ErrClosed = errors.New("xml writer is closed")

const (
	header = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<items>\n"
	footer = "</items>\n"
	indent = "    "
)

// Writer streams an XML feedback document to an io.Writer.
//
// New writes the document header immediately; Close writes the footer. Once
// a write fails, the document is likely truncated mid-element, so every
// subsequent call returns the first error.
type Writer struct {
	w      io.Writer
	err    error
	closed bool
}

// New returns a Writer emitting to w. The XML header is written immediately.
func New(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, header); err != nil {
		return nil, fmt.Errorf("failed to write XML header: %w", err)
	}

	return &Writer{w: w}, nil
}

// WriteItem appends one item element to the document.
func (x *Writer) WriteItem(item alfred.Item) error {
	if x.err != nil {
		return x.err
	}
	if x.closed {
		return ErrClosed
	}

	if _, err := io.WriteString(x.w, encodeItem(item)); err != nil {
		x.err = fmt.Errorf("failed to write item: %w", err)

		return x.err
	}

	return nil
}

// Close writes the document footer. As with WriteItem, an earlier write
// error is returned without attempting to write the footer.
func (x *Writer) Close() error {
	if x.err != nil {
		return x.err
	}
	if x.closed {
		return ErrClosed
	}
	x.closed = true

	if _, err := io.WriteString(x.w, footer); err != nil {
		x.err = fmt.Errorf("failed to write XML footer: %w", err)

		return x.err
	}

	return nil
}

// WriteItems writes a complete XML document wrapping the items to w.
func WriteItems(w io.Writer, items []alfred.Item) error {
	xw, err := New(w)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := xw.WriteItem(item); err != nil {
			return err
		}
	}

	return xw.Close()
}

// encodeItem renders one <item> element. Attributes carry uid, validity,
// autocomplete and type; title, subtitle, icon, arg and the auxiliary text
// fields are child elements.
func encodeItem(item alfred.Item) string {
	var sb strings.Builder

	sb.WriteString(indent)
	sb.WriteString("<item")
	if item.UID != "" {
		fmt.Fprintf(&sb, " uid=\"%s\"", escape(item.UID))
	}
	if !item.Valid {
		sb.WriteString(` valid="no"`)
	}
	if item.Autocomplete != "" {
		fmt.Fprintf(&sb, " autocomplete=\"%s\"", escape(item.Autocomplete))
	}
	if item.Type != alfred.TypeDefault {
		fmt.Fprintf(&sb, " type=\"%s\"", escape(string(item.Type)))
	}
	sb.WriteString(">\n")

	child := indent + indent
	fmt.Fprintf(&sb, "%s<title>%s</title>\n", child, escape(item.Title))
	if item.Subtitle != "" {
		fmt.Fprintf(&sb, "%s<subtitle>%s</subtitle>\n", child, escape(item.Subtitle))
	}
	if item.Icon != nil {
		if item.Icon.Source == alfred.IconSourceImage {
			fmt.Fprintf(&sb, "%s<icon>%s</icon>\n", child, escape(item.Icon.Value))
		} else {
			fmt.Fprintf(&sb, "%s<icon type=\"%s\">%s</icon>\n",
				child, string(item.Icon.Source), escape(item.Icon.Value))
		}
	}
	if item.Arg != "" {
		fmt.Fprintf(&sb, "%s<arg>%s</arg>\n", child, escape(item.Arg))
	}
	if item.CopyText != "" {
		fmt.Fprintf(&sb, "%s<text type=\"copy\">%s</text>\n", child, escape(item.CopyText))
	}
	if item.LargeTypeText != "" {
		fmt.Fprintf(&sb, "%s<text type=\"largetype\">%s</text>\n", child, escape(item.LargeTypeText))
	}
	if item.QuicklookURL != "" {
		fmt.Fprintf(&sb, "%s<quicklookurl>%s</quicklookurl>\n", child, escape(item.QuicklookURL))
	}

	sb.WriteString(indent)
	sb.WriteString("</item>\n")

	return sb.String()
}

// escape encodes XML entities and replaces characters that are not legal in
// an XML 1.0 document with U+FFFD.
func escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		case r == '"':
			sb.WriteString("&quot;")
		case r == '&':
			sb.WriteString("&amp;")
		case r == '\t' || r == '\n' || r == '\r':
			sb.WriteRune(r)
		case r < 0x20 || r == 0xFFFE || r == 0xFFFF:
			sb.WriteRune('�')
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
