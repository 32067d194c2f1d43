// Package lqip generates low-quality image placeholders.
//
// Two independent operations are provided:
//   - Base64: resizes a JPEG or PNG file to a 14 pixel wide thumbnail and
//     returns it as a data URI ready for <img src> or CSS url().
//   - Palette: extracts the dominant named color swatches of an image and
//     returns their hex values ordered from most to least popular.
//
// The pixel work is delegated to two collaborators, a Resizer and a
// Quantizer. Default implementations backed by github.com/disintegration/imaging,
// github.com/anthonynsimon/bild and github.com/lucasb-eyer/go-colorful are
// used unless replaced with WithResizer or WithQuantizer.
//
// # Errors
//
// Errors fall into three groups:
//   - *UnsupportedFormatError: the file extension is missing or is not one of
//     jpeg, jpg or png. Returned by Base64 before any file access.
//   - *EmptyResultError: a collaborator succeeded but produced no data.
//   - Anything else: the collaborator's own error, returned unchanged.
//
// Nothing is retried.
//
// # Concurrency
//
// A Generator holds no mutable state after New returns. Base64 and Palette
// may be called from any number of goroutines.
//
// # Usage
//
//	uri, err := lqip.Base64(ctx, "photo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	colors, err := lqip.Palette(ctx, "photo.png")
package lqip
