package charts

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// Figure is a rendered chart. It can be encoded any number of times and
// always produces the same output.
type Figure struct {
	Name   string
	Width  vg.Length
	Height vg.Length

	panels []*plot.Plot
	draw   func(dc draw.Canvas)
}

// Panels returns the plots making up the figure
func (f *Figure) Panels() []*plot.Plot {
	return append([]*plot.Plot(nil), f.panels...)
}

// Draw draws the figure onto dc
func (f *Figure) Draw(dc draw.Canvas) {
	f.draw(dc)
}

// Encode writes the figure to w in the given format: png, jpg, jpeg, tif,
// tiff, svg, pdf or eps
func (f *Figure) Encode(w io.Writer, format string) error {
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, strings.ToLower(format))
	if err != nil {
		return apperrors.NewRenderError("unsupported image format", err).
			WithContext("format", format)
	}

	f.Draw(draw.New(c))

	if _, err := c.WriteTo(w); err != nil {
		return apperrors.NewStorageError("failed to encode figure", err).
			WithContext("figure", f.Name).
			WithContext("format", format)
	}
	return nil
}

// Save writes the figure to path, choosing the format from the file
// extension and defaulting to png. An existing file is overwritten.
func (f *Figure) Save(path string) (err error) {
	format := FormatFromPath(path)

	// Validate the format before touching the file system
	if _, err := draw.NewFormattedCanvas(1, 1, format); err != nil {
		return apperrors.NewRenderError("unsupported image format", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create figure file", err).
			WithContext("path", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = apperrors.NewStorageError("failed to close figure file", cerr).
				WithContext("path", path)
		}
	}()

	w := bufio.NewWriter(file)
	if err := f.Encode(w, format); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return apperrors.NewStorageError("failed to write figure file", err).
			WithContext("path", path)
	}
	return nil
}

// FormatFromPath returns the image format implied by the extension of path
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "png"
	}
	return ext
}
