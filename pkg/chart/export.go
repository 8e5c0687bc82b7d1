package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// Format is an export file format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrUnsupportedFormat is returned for formats other than svg and png.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat accepts "svg", ".PNG" and the like.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (want svg or png)", ErrUnsupportedFormat, s)
}

// InferFormat returns the format named by path's extension, or def when the
// extension is missing.
func InferFormat(path string, def Format) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return def, nil
	}
	return ParseFormat(ext)
}

// ImageOptions controls exported image size and captions.
type ImageOptions struct {
	Width, Height int
	// Subtitle is printed under the title, e.g. the selected date range.
	Subtitle string
}

func (o ImageOptions) withDefaults() ImageOptions {
	if o.Width <= 0 {
		o.Width = 960
	}
	if o.Height <= 0 {
		o.Height = 420
	}
	return o
}

var (
	colorBackdrop = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorGrid     = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colorText     = color.RGBA{0x11, 0x18, 0x27, 0xff}
	colorSubtle   = color.RGBA{0x6b, 0x72, 0x80, 0xff}
)

const (
	marginLeft   = 56
	marginRight  = 56
	marginTop    = 64
	marginBottom = 56
	gridLines    = 4
)

// frame holds pixel geometry shared by both renderers.
type frame struct {
	opts         ImageOptions
	x0, y0       float64 // plot origin, bottom left
	plotW, plotH float64
	groupW, barW float64
}

func newFrame(p Plot, opts ImageOptions) frame {
	f := frame{opts: opts}
	f.x0 = marginLeft
	f.y0 = float64(opts.Height - marginBottom)
	f.plotW = float64(opts.Width - marginLeft - marginRight)
	f.plotH = float64(opts.Height - marginTop - marginBottom)
	if n := len(p.Categories); n > 0 {
		f.groupW = f.plotW / float64(n)
	}
	if n := len(p.Bars); n > 0 {
		f.barW = min(20, f.groupW*0.7/float64(n))
	}
	return f
}

func (f frame) barRect(p Plot, ci, bi int) (x, y, w, h float64) {
	n := float64(len(p.Bars))
	start := f.x0 + f.groupW*float64(ci) + (f.groupW-f.barW*n)/2
	h = p.Primary.Scale(p.Bars[bi].Values[ci]) * f.plotH
	return start + f.barW*float64(bi), f.y0 - h, f.barW, h
}

func (f frame) linePoint(p Plot, ci int) (x, y float64) {
	x = f.x0 + f.groupW*(float64(ci)+0.5)
	y = f.y0 - p.Secondary.Scale(p.Line.Values[ci])*f.plotH
	return x, y
}

func (f frame) gridY(i int) float64 {
	return f.y0 - f.plotH*float64(i)/gridLines
}

// SaveSVG writes p as an SVG document to w.
func SaveSVG(w io.Writer, p Plot, opts ImageOptions) error {
	if p.Empty() {
		return errors.New("no data to export")
	}
	opts = opts.withDefaults()
	f := newFrame(p, opts)

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+css(colorBackdrop))
	canvas.Text(marginLeft, 28, p.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:sans-serif;font-weight:bold", css(colorText)))
	if opts.Subtitle != "" {
		canvas.Text(marginLeft, 46, opts.Subtitle, fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif", css(colorSubtle)))
	}

	primary := p.Primary.Ticks(gridLines)
	secondary := p.Secondary.Ticks(gridLines)
	small := fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif", css(colorSubtle))
	for i := 0; i <= gridLines; i++ {
		y := int(f.gridY(i))
		canvas.Line(int(f.x0), y, int(f.x0+f.plotW), y, "stroke:"+css(colorGrid))
		canvas.Text(int(f.x0)-6, y+4, shortNumber(primary[i]), small+";text-anchor:end")
		if len(p.Line.Values) > 0 {
			canvas.Text(int(f.x0+f.plotW)+6, y+4, shortNumber(secondary[i]), small)
		}
	}

	for ci, cat := range p.Categories {
		for bi, b := range p.Bars {
			x, y, w, h := f.barRect(p, ci, bi)
			canvas.Rect(int(x), int(y), max(int(w), 1), int(h), "fill:"+b.Color)
		}
		cx := int(f.x0 + f.groupW*(float64(ci)+0.5))
		canvas.Text(cx, int(f.y0)+16, cat, small+";text-anchor:middle")
	}

	if n := len(p.Line.Values); n > 0 {
		xs, ys := make([]int, n), make([]int, n)
		for ci := range p.Line.Values {
			x, y := f.linePoint(p, ci)
			xs[ci], ys[ci] = int(x), int(y)
		}
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", p.Line.Color))
	}

	lx := marginLeft
	for _, s := range legendSeries(p) {
		canvas.Rect(lx, opts.Height-22, 10, 10, "fill:"+s.Color)
		canvas.Text(lx+14, opts.Height-13, s.Name, small)
		lx += 24 + 7*len(s.Name)
	}
	canvas.End()
	return nil
}

// SavePNG renders p to a PNG file at path.
func SavePNG(path string, p Plot, opts ImageOptions) error {
	if p.Empty() {
		return errors.New("no data to export")
	}
	opts = opts.withDefaults()
	f := newFrame(p, opts)

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(p.Title, marginLeft, 24, 0, 0.5)
	if opts.Subtitle != "" {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(opts.Subtitle, marginLeft, 42, 0, 0.5)
	}

	primary := p.Primary.Ticks(gridLines)
	secondary := p.Secondary.Ticks(gridLines)
	dc.SetLineWidth(1)
	for i := 0; i <= gridLines; i++ {
		y := f.gridY(i)
		dc.SetColor(colorGrid)
		dc.DrawLine(f.x0, y, f.x0+f.plotW, y)
		dc.Stroke()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(shortNumber(primary[i]), f.x0-6, y, 1, 0.5)
		if len(p.Line.Values) > 0 {
			dc.DrawStringAnchored(shortNumber(secondary[i]), f.x0+f.plotW+6, y, 0, 0.5)
		}
	}

	for ci, cat := range p.Categories {
		for bi, b := range p.Bars {
			x, y, w, h := f.barRect(p, ci, bi)
			dc.SetColor(b.RGBA())
			dc.DrawRectangle(x, y, w, h)
			dc.Fill()
		}
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(cat, f.x0+f.groupW*(float64(ci)+0.5), f.y0+14, 0.5, 0.5)
	}

	if len(p.Line.Values) > 0 {
		dc.SetColor(p.Line.RGBA())
		dc.SetLineWidth(2)
		for ci := range p.Line.Values {
			x, y := f.linePoint(p, ci)
			if ci == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	lx := float64(marginLeft)
	for _, s := range legendSeries(p) {
		dc.SetColor(s.RGBA())
		dc.DrawRectangle(lx, float64(opts.Height-22), 10, 10)
		dc.Fill()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(s.Name, lx+14, float64(opts.Height-17), 0, 0.5)
		lx += float64(24 + 7*len(s.Name))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return dc.SavePNG(path)
}

// Save writes p to path in format.
func Save(path string, format Format, p Plot, opts ImageOptions) error {
	switch format {
	case FormatSVG:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := SaveSVG(file, p, opts); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	case FormatPNG:
		return SavePNG(path, p, opts)
	}
	return fmt.Errorf("%w %q (want svg or png)", ErrUnsupportedFormat, format)
}

func legendSeries(p Plot) []Series {
	out := make([]Series, 0, len(p.Bars)+1)
	if p.Line.Name != "" {
		out = append(out, p.Line)
	}
	return append(out, p.Bars...)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
