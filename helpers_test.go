package captcha

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/captcha/text"
)

// newTestGenerator returns a seeded generator using the built-in font.
func newTestGenerator(t *testing.T, tier string, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithRand(NewSeededRand(42))}, opts...)
	g, err := New(tier, opts...)
	if err != nil {
		t.Fatalf("New(%q) = %v", tier, err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

// builtinPool returns a pool of the built-in font at the given sizes.
func builtinPool(t *testing.T, sizes ...float64) *text.Pool {
	t.Helper()
	src, err := text.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	pool, _ := text.NewPool([]*text.Source{src}, sizes)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// countDiff returns the number of pixels of img that differ from c.
func countDiff(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != c {
				n++
			}
		}
	}
	return n
}

// variance returns the variance of the red channel of img.
func variance(img *image.RGBA) float64 {
	var sum, sq float64
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		v := float64(img.Pix[i])
		sum += v
		sq += v * v
		n++
	}
	mean := sum / float64(n)
	return sq/float64(n) - mean*mean
}

func inkPixels(im *image.NRGBA) int {
	n := 0
	for i := 3; i < len(im.Pix); i += 4 {
		if im.Pix[i] != 0 {
			n++
		}
	}
	return n
}

var (
	black = color.RGBA{A: 0xff}
	paper = color.RGBA{255, 255, 255, 255}
)

// inkRuns returns the column ranges [x0, x1) that contain a pixel whose red
// channel is below threshold.
func inkRuns(img *image.RGBA, threshold uint8) [][2]int {
	var runs [][2]int
	b := img.Bounds()
	start := -1
	for x := b.Min.X; x <= b.Max.X; x++ {
		ink := false
		if x < b.Max.X {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				if img.RGBAAt(x, y).R < threshold {
					ink = true
					break
				}
			}
		}
		switch {
		case ink && start < 0:
			start = x
		case !ink && start >= 0:
			runs = append(runs, [2]int{start, x})
			start = -1
		}
	}
	return runs
}

// inkBoxes returns the bounding box of every ink run, grown by one pixel.
func inkBoxes(img *image.RGBA, threshold uint8) []image.Rectangle {
	var boxes []image.Rectangle
	b := img.Bounds()
	for _, run := range inkRuns(img, threshold) {
		box := image.Rectangle{}
		for x := run[0]; x < run[1]; x++ {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				if img.RGBAAt(x, y).R < threshold {
					box = box.Union(image.Rect(x, y, x+1, y+1))
				}
			}
		}
		boxes = append(boxes, box.Inset(-1))
	}
	return boxes
}

// diffComponents groups the pixels that differ between a and b into
// 8-connected components.
func diffComponents(a, b *image.RGBA) [][]image.Point {
	r := a.Bounds()
	seen := make(map[image.Point]bool)
	differs := func(p image.Point) bool {
		return p.In(r) && a.RGBAAt(p.X, p.Y) != b.RGBAAt(p.X, p.Y)
	}

	var comps [][]image.Point
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := image.Pt(x, y)
			if seen[p] || !differs(p) {
				continue
			}
			var comp []image.Point
			stack := []image.Point{p}
			seen[p] = true
			for len(stack) > 0 {
				q := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp = append(comp, q)
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						n := q.Add(image.Pt(dx, dy))
						if !seen[n] && differs(n) {
							seen[n] = true
							stack = append(stack, n)
						}
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

func overlapsAny(comp []image.Point, boxes []image.Rectangle) bool {
	for _, p := range comp {
		for _, box := range boxes {
			if p.In(box) {
				return true
			}
		}
	}
	return false
}
