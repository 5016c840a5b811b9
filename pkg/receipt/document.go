package receipt

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const DefaultWidth = 40

// Document builds a fixed-width text receipt line by line.
type Document struct {
	buf   bytes.Buffer
	width int
}

func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Document{width: width}
}

func (d *Document) Text(text string) *Document {
	d.buf.WriteString(text)
	d.buf.WriteByte('\n')
	return d
}

func (d *Document) Center(text string) *Document {
	pad := (d.width - utf8.RuneCountInString(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return d.Text(strings.Repeat(" ", pad) + text)
}

// Row prints left and right aligned to the document edges, with at least one
// space between them.
func (d *Document) Row(left string, right string) *Document {
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return d.Text(left + strings.Repeat(" ", gap) + right)
}

func (d *Document) Divider(char rune) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
