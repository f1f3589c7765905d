// Package filter provides the image filters applied to finished CAPTCHA
// canvases:
//   - Gaussian blur (separable, O(n) per radius)
//   - 3x3 convolution, used for the final smoothing pass
//
// Filters work in place on *image.RGBA and borrow scratch buffers from a
// pool, so a generator running in a loop does not allocate per call.
package filter
