// Package imaging provides the default image collaborators used by lqip.
//
// Thumbnailer decodes, resizes and re-encodes image files with
// github.com/disintegration/imaging. VibrantQuantizer computes named
// dominant-color swatches with github.com/anthonynsimon/bild for loading and
// downsampling and github.com/lucasb-eyer/go-colorful for HSL math.
//
// # Thread Safety
//
// Both types are stateless once configured. Their methods can be called
// concurrently; each call opens and decodes its own copy of the file.
//
// # Color Representation
//
// Swatch colors are 6-digit lowercase hex strings "#rrggbb" with alpha
// excluded. Saturation and luma are HSL values in the 0-1 range.
//
// # Error Handling
//
// Errors from opening, decoding or encoding are wrapped with context using
// %w, so errors.Is still matches the underlying cause (for example
// fs.ErrNotExist for a missing file).
package imaging
