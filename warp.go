package captcha

import (
	"image"
	"image/color"
	"math"
)

// homography is a 3x3 projective transform in row-major order with h[8]=1.
type homography [9]float64

// apply maps (x, y) through h.
func (h homography) apply(x, y float64) (float64, float64) {
	w := h[6]*x + h[7]*y + h[8]
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w
}

// solveHomography returns the projective transform taking each from[i] to
// to[i]. It reports false when the points are degenerate (three of them
// collinear).
func solveHomography(from, to [4][2]float64) (homography, bool) {
	// Two rows per correspondence of the 8x9 augmented system
	// [x y 1 0 0 0 -xu -yu | u]
	// [0 0 0 x y 1 -xv -yv | v].
	var m [8][9]float64
	for i := range 4 {
		x, y := from[i][0], from[i][1]
		u, v := to[i][0], to[i][1]
		m[2*i] = [9]float64{x, y, 1, 0, 0, 0, -x * u, -y * u, u}
		m[2*i+1] = [9]float64{0, 0, 0, x, y, 1, -x * v, -y * v, v}
	}

	// Gaussian elimination with partial pivoting.
	for col := range 8 {
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return homography{}, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := range 8 {
			if row == col {
				continue
			}
			f := m[row][col] / m[col][col]
			for k := col; k < 9; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}

	var h homography
	for i := range 8 {
		h[i] = m[i][8] / m[i][i]
	}
	h[8] = 1
	return h, true
}

// quadWarp resamples src into a w x h image. Output corners UL, LL, LR, UR
// are pulled from the source quadrilateral quad (same order) through a
// projective mapping, so each edge bends independently. Pixels that map
// outside src are transparent.
func quadWarp(src *image.NRGBA, w, h int, quad [4][2]float64) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	fw, fh := float64(w), float64(h)
	rect := [4][2]float64{{0, 0}, {0, fh}, {fw, fh}, {fw, 0}}

	hm, ok := solveHomography(rect, quad)
	if !ok {
		return dst
	}

	for y := range h {
		for x := range w {
			sx, sy := hm.apply(float64(x)+0.5, float64(y)+0.5)
			dst.SetNRGBA(x, y, sampleBilinear(src, sx-0.5, sy-0.5))
		}
	}
	return dst
}

// sampleBilinear interpolates src at (x, y) in premultiplied space and
// returns straight alpha. Samples outside src count as transparent.
func sampleBilinear(src *image.NRGBA, x, y float64) color.NRGBA {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return color.NRGBA{}
	}
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	var r, g, b, a float64
	add := func(px, py int, weight float64) {
		if weight == 0 || !(image.Point{px, py}.In(src.Rect)) {
			return
		}
		c := src.NRGBAAt(px, py)
		ca := float64(c.A) * weight
		r += float64(c.R) * ca
		g += float64(c.G) * ca
		b += float64(c.B) * ca
		a += ca
	}
	add(ix, iy, (1-fx)*(1-fy))
	add(ix+1, iy, fx*(1-fy))
	add(ix, iy+1, (1-fx)*fy)
	add(ix+1, iy+1, fx*fy)

	if a < 0.5 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(math.Min(255, r/a+0.5)),
		G: uint8(math.Min(255, g/a+0.5)),
		B: uint8(math.Min(255, b/a+0.5)),
		A: uint8(math.Min(255, a+0.5)),
	}
}
