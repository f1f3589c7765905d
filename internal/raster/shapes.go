package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point is a 2D point in canvas pixel coordinates.
type Point struct {
	X, Y float64
}

// Painter composites anti-aliased shapes onto an RGBA canvas with
// source-over blending. Colours with alpha below 255 blend into what is
// already there.
//
// A Painter reuses one rasterizer and is not safe for concurrent use.
type Painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

// NewPainter creates a painter for dst.
func NewPainter(dst *image.RGBA) *Painter {
	b := dst.Bounds()
	return &Painter{dst: dst, z: vector.NewRasterizer(b.Dx(), b.Dy())}
}

// FillPolygon fills the closed polygon pts.
func (p *Painter) FillPolygon(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	p.begin()
	p.subpath(pts)
	p.paint(c)
}

// StrokeLine draws a segment of the given width with butt ends.
func (p *Painter) StrokeLine(a, b Point, width float64, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// Unit normal scaled to half the width.
	nx, ny := -dy/length*width/2, dx/length*width/2
	p.FillPolygon([]Point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}, c)
}

// StrokeArc draws the part of the ellipse centred at c with radii rx, ry
// between the angles start and end (radians, clockwise on screen from the
// positive x axis), with the given stroke width.
func (p *Painter) StrokeArc(center Point, rx, ry, start, end, width float64, c color.Color) {
	if end <= start || width <= 0 {
		return
	}
	hw := width / 2
	n := segments(rx+hw, ry+hw, end-start)

	outer := ellipsePoints(center, rx+hw, ry+hw, start, end, n)
	inner := ellipsePoints(center, math.Max(rx-hw, 0), math.Max(ry-hw, 0), start, end, n)

	ring := make([]Point, 0, 2*len(outer))
	ring = append(ring, outer...)
	for i := len(inner) - 1; i >= 0; i-- {
		ring = append(ring, inner[i])
	}
	p.FillPolygon(ring, c)
}

// FillEllipse fills the ellipse centred at center.
func (p *Painter) FillEllipse(center Point, rx, ry float64, c color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	n := segments(rx, ry, 2*math.Pi)
	p.FillPolygon(ellipsePoints(center, rx, ry, 0, 2*math.Pi, n), c)
}

// StrokeEllipse draws the outline of the ellipse centred at center. The
// stroke straddles the ideal outline.
func (p *Painter) StrokeEllipse(center Point, rx, ry, width float64, c color.Color) {
	if rx <= 0 || ry <= 0 || width <= 0 {
		return
	}
	hw := width / 2
	if rx <= hw || ry <= hw {
		p.FillEllipse(center, rx+hw, ry+hw, c)
		return
	}
	n := segments(rx+hw, ry+hw, 2*math.Pi)
	outer := ellipsePoints(center, rx+hw, ry+hw, 0, 2*math.Pi, n)
	inner := ellipsePoints(center, rx-hw, ry-hw, 0, 2*math.Pi, n)

	// Opposite windings cancel inside the inner ellipse.
	for i, j := 0, len(inner)-1; i < j; i, j = i+1, j-1 {
		inner[i], inner[j] = inner[j], inner[i]
	}
	p.begin()
	p.subpath(outer)
	p.subpath(inner)
	p.paint(c)
}

func (p *Painter) begin() {
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Over
}

func (p *Painter) subpath(pts []Point) {
	origin := p.dst.Bounds().Min
	ox, oy := float64(origin.X), float64(origin.Y)
	p.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, pt := range pts[1:] {
		p.z.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
	}
	p.z.ClosePath()
}

func (p *Painter) paint(c color.Color) {
	p.z.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{})
}

// segments picks a polygon resolution of about 2px per edge for an arc of
// sweep radians.
func segments(rx, ry, sweep float64) int {
	arc := sweep * math.Max(rx, ry)
	n := int(math.Ceil(arc / 2))
	if n < 8 {
		n = 8
	}
	return n
}

// ellipsePoints samples n+1 points from start to end inclusive.
func ellipsePoints(c Point, rx, ry, start, end float64, n int) []Point {
	pts := make([]Point, n+1)
	step := (end - start) / float64(n)
	for i := range pts {
		sin, cos := math.Sincos(start + step*float64(i))
		pts[i] = Point{c.X + rx*cos, c.Y + ry*sin}
	}
	return pts
}
