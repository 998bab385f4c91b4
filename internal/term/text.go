package term

import (
	"bufio"
	"io"
	"strings"

	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/system"
)

// TextRenderer writes frames as plain text, one line per map row, followed
// by an empty line. Colours are dropped and blank cells become spaces.
type TextRenderer struct {
	w *bufio.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: bufio.NewWriter(w)}
}

func (r *TextRenderer) Draw(f *system.Frame) error {
	var line strings.Builder
	for y := 0; y < f.Height; y++ {
		line.Reset()
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			if c.Glyph == 0 {
				line.WriteByte(' ')
				continue
			}
			line.WriteRune(data.DecodeGlyph(c.Glyph))
		}
		if _, err := r.w.WriteString(strings.TrimRight(line.String(), " ") + "\n"); err != nil {
			return err
		}
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	return r.w.Flush()
}
