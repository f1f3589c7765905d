package filter

import (
	"image"
	"sync"
)

// GaussianBlur blurs img in place with a separable Gaussian of the given
// radius. Edges are extended by clamping. A radius <= 0 is a no-op.
//
// The two passes are:
//  1. Horizontal: convolve each row of img into a float buffer
//  2. Vertical: convolve each column of the buffer back into img
func GaussianBlur(img *image.RGBA, radius float64) {
	if img == nil || radius <= 0 {
		return
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return
	}

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	kernel := CachedGaussianKernel(radius)
	blurHorizontal(img, temp, width, height, kernel)
	blurVertical(temp, img, width, height, kernel)
}

// blurHorizontal applies 1D horizontal convolution from img into temp.
func blurHorizontal(img *image.RGBA, temp []float32, width, height int, kernel []float32) {
	halfKernel := len(kernel) / 2
	origin := img.Bounds().Min

	for y := 0; y < height; y++ {
		row := img.PixOffset(origin.X, origin.Y+y)

		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k, weight := range kernel {
				kx := clampInt(x+k-halfKernel, 0, width-1)
				i := row + kx*4

				r += float32(img.Pix[i+0]) * weight
				g += float32(img.Pix[i+1]) * weight
				b += float32(img.Pix[i+2]) * weight
				a += float32(img.Pix[i+3]) * weight
			}

			t := (y*width + x) * 4
			temp[t+0] = r
			temp[t+1] = g
			temp[t+2] = b
			temp[t+3] = a
		}
	}
}

// blurVertical applies 1D vertical convolution from temp into img.
func blurVertical(temp []float32, img *image.RGBA, width, height int, kernel []float32) {
	halfKernel := len(kernel) / 2
	origin := img.Bounds().Min

	for y := 0; y < height; y++ {
		row := img.PixOffset(origin.X, origin.Y+y)

		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k, weight := range kernel {
				ky := clampInt(y+k-halfKernel, 0, height-1)
				t := (ky*width + x) * 4

				r += temp[t+0] * weight
				g += temp[t+1] * weight
				b += temp[t+2] * weight
				a += temp[t+3] * weight
			}

			i := row + x*4
			img.Pix[i+0] = clampUint8(r)
			img.Pix[i+1] = clampUint8(g)
			img.Pix[i+2] = clampUint8(b)
			img.Pix[i+3] = clampUint8(a)
		}
	}
}

// Convolve3 applies a 3x3 kernel to img in place. Edges are extended by
// clamping.
func Convolve3(img *image.RGBA, k Kernel3) {
	if img == nil {
		return
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return
	}

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, bl, a float32
			for ky := -1; ky <= 1; ky++ {
				sy := clampInt(y+ky, 0, height-1)
				for kx := -1; kx <= 1; kx++ {
					sx := clampInt(x+kx, 0, width-1)
					i := img.PixOffset(b.Min.X+sx, b.Min.Y+sy)
					w := k[(ky+1)*3+kx+1]
					r += float32(img.Pix[i+0]) * w
					g += float32(img.Pix[i+1]) * w
					bl += float32(img.Pix[i+2]) * w
					a += float32(img.Pix[i+3]) * w
				}
			}
			t := (y*width + x) * 4
			temp[t+0] = r
			temp[t+1] = g
			temp[t+2] = bl
			temp[t+3] = a
		}
	}

	for y := 0; y < height; y++ {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < width; x++ {
			t := (y*width + x) * 4
			i := row + x*4
			img.Pix[i+0] = clampUint8(temp[t+0])
			img.Pix[i+1] = clampUint8(temp[t+1])
			img.Pix[i+2] = clampUint8(temp[t+2])
			img.Pix[i+3] = clampUint8(temp[t+3])
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for filter passes. CAPTCHA canvases are small, so
// the default buffer covers 256x256 RGBA.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

// getTempBuffer retrieves a temporary buffer from the pool.
// The buffer is guaranteed to have at least width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}

	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 4*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampInt clamps v to [minVal, maxVal].
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
