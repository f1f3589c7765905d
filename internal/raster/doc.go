// Package raster draws the anti-aliased distractor shapes of a CAPTCHA
// (lines, arcs, ellipses) onto RGBA canvases.
//
// Shapes are flattened to polygons and filled with golang.org/x/image/vector,
// whose coverage accumulation gives exact-area anti-aliasing. Strokes are
// built as closed outlines (a quad for a line, an outer/inner ring for arcs
// and ellipse outlines), so the rasterizer only ever fills.
package raster
