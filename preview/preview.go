// Package preview renders pipeline results to raster images for visual
// inspection: part material, chain outlines by role, and lead arcs.
//
// Drawing coordinates have Y pointing up; the image is flipped so the
// preview looks like the drawing.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/cutpath"
)

// Colors used by Render.
var (
	Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Material   = color.RGBA{R: 220, G: 224, B: 230, A: 255}
	ShellColor = color.RGBA{R: 30, G: 60, B: 160, A: 255}
	HoleColor  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	OpenColor  = color.RGBA{R: 230, G: 140, B: 0, A: 255}
	LeadIn     = color.RGBA{R: 20, G: 150, B: 60, A: 255}
	LeadOut    = color.RGBA{R: 130, G: 40, B: 170, A: 255}
	LabelColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// Options controls the output image.
type Options struct {
	// Size is the length in pixels of the longer image side.
	Size int
	// Margin is the empty border in pixels.
	Margin int
	// Stroke is the outline width in pixels.
	Stroke float64
	// Labels draws part IDs next to their shells.
	Labels bool
}

// DefaultOptions returns a 1024 pixel preview with labels.
func DefaultOptions() Options {
	return Options{Size: 1024, Margin: 16, Stroke: 2, Labels: true}
}

// canvas maps drawing coordinates to image pixels.
type canvas struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	min    cutpath.Point
	scale  float64
	margin float64
	stroke float64
}

func newCanvas(bounds cutpath.Rect, opts Options) *canvas {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Stroke <= 0 {
		opts.Stroke = 1
	}
	margin := float64(max(opts.Margin, 0))
	span := math.Max(bounds.Width(), bounds.Height())
	avail := math.Max(float64(opts.Size)-2*margin, 1)
	scale := 1.0
	if span > 0 {
		scale = avail / span
	}
	w := pixels(bounds.Width()*scale + 2*margin)
	h := pixels(bounds.Height()*scale + 2*margin)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	return &canvas{
		img:    img,
		z:      vector.NewRasterizer(w, h),
		min:    bounds.Min,
		scale:  scale,
		margin: margin,
		stroke: opts.Stroke,
	}
}

// pixels rounds an image extent up, ignoring floating point noise.
func pixels(v float64) int {
	return max(int(math.Ceil(v-1e-6)), 1)
}

// pixel maps a drawing point to image coordinates.
func (c *canvas) pixel(p cutpath.Point) (float32, float32) {
	h := float64(c.img.Bounds().Dy())
	x := c.margin + (p.X-c.min.X)*c.scale
	y := h - c.margin - (p.Y-c.min.Y)*c.scale
	return float32(x), float32(y)
}

func (c *canvas) reset() {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *canvas) paint(col color.Color) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// ring adds a closed polygon, reversed when its signed area does not match
// ccw. Rings of opposite winding cancel, which cuts holes out of material.
func (c *canvas) ring(pg cutpath.Polygon, ccw bool) {
	if len(pg) < 3 {
		return
	}
	pts := []cutpath.Point(pg)
	if (pg.SignedArea() > 0) != ccw {
		pts = make([]cutpath.Point, len(pg))
		for i, p := range pg {
			pts[len(pg)-1-i] = p
		}
	}
	c.z.MoveTo(c.pixel(pts[0]))
	for _, p := range pts[1:] {
		c.z.LineTo(c.pixel(p))
	}
	c.z.ClosePath()
}

// polyline adds one quad per segment, stroke pixels wide.
func (c *canvas) polyline(pts []cutpath.Point) {
	half := float32(c.stroke / 2)
	for i := 1; i < len(pts); i++ {
		ax, ay := c.pixel(pts[i-1])
		bx, by := c.pixel(pts[i])
		dx, dy := bx-ax, by-ay
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		c.z.MoveTo(ax+nx, ay+ny)
		c.z.LineTo(bx+nx, by+ny)
		c.z.LineTo(bx-nx, by-ny)
		c.z.LineTo(ax-nx, ay-ny)
		c.z.ClosePath()
	}
}

// marker adds a square of side 3·stroke centered on p.
func (c *canvas) marker(p cutpath.Point) {
	x, y := c.pixel(p)
	s := float32(1.5 * c.stroke)
	c.z.MoveTo(x-s, y-s)
	c.z.LineTo(x+s, y-s)
	c.z.LineTo(x+s, y+s)
	c.z.LineTo(x-s, y+s)
	c.z.ClosePath()
}

func (c *canvas) label(p cutpath.Point, text string) {
	x, y := c.pixel(p)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(LabelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x)+3, int(y)-3),
	}
	d.DrawString(text)
}

// Bounds returns the extent of every chain and lead in res.
func Bounds(res *cutpath.Result) cutpath.Rect {
	var pts []cutpath.Point
	for _, ch := range res.Chains {
		if ch.IsEmpty() {
			continue
		}
		bb := ch.BoundingBox()
		pts = append(pts, bb.Min, bb.Max)
	}
	for _, cl := range res.Leads {
		for _, l := range []*cutpath.Lead{cl.Result.LeadIn, cl.Result.LeadOut} {
			if l != nil {
				pts = append(pts, l.Points...)
			}
		}
	}
	return cutpath.BoundsOf(pts)
}

// Render draws res into a new image.
func Render(res *cutpath.Result, opts Options) *image.RGBA {
	c := newCanvas(Bounds(res), opts)

	c.reset()
	for _, p := range res.Parts {
		c.ring(p.Shell.Chain.Polygon(), true)
		for _, h := range p.Holes {
			c.ring(h.Chain.Polygon(), false)
		}
	}
	c.paint(Material)

	roles := map[string]cutpath.Role{}
	for _, p := range res.Parts {
		for _, pc := range p.PartChains() {
			role, _ := p.RoleOf(pc.Chain)
			roles[pc.Chain.ID] = role
		}
	}
	for _, ch := range res.Chains {
		col := color.Color(OpenColor)
		if role, ok := roles[ch.ID]; ok {
			col = ShellColor
			if role == cutpath.RoleHole {
				col = HoleColor
			}
		}
		c.reset()
		c.polyline(ch.Tessellate())
		c.paint(col)
	}

	for _, cl := range res.Leads {
		for _, lc := range []struct {
			lead *cutpath.Lead
			col  color.Color
		}{{cl.Result.LeadIn, LeadIn}, {cl.Result.LeadOut, LeadOut}} {
			if lc.lead == nil || lc.lead.Type != cutpath.LeadArc {
				continue
			}
			c.reset()
			c.polyline(lc.lead.Points)
			c.marker(lc.lead.Points[0])
			c.paint(lc.col)
		}
	}

	if opts.Labels {
		for _, p := range res.Parts {
			bb := p.Shell.BoundingBox
			c.label(cutpath.Pt(bb.Min.X, bb.Max.Y), p.ID)
		}
	}
	return c.img
}

// Encode renders res and writes it as PNG.
func Encode(w io.Writer, res *cutpath.Result, opts Options) error {
	if err := png.Encode(w, Render(res, opts)); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// WriteFile renders res to a PNG file at path.
func WriteFile(path string, res *cutpath.Result, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close preview: %w", cerr)
		}
	}()
	return Encode(f, res, opts)
}
