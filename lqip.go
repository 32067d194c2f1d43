package lqip

import (
	"context"

	"go.uber.org/zap"

	"github.com/ironsheep/lqip/internal/imaging"
)

// ThumbnailWidth is the width in pixels of every Base64 thumbnail.
// The height is scaled to keep the source aspect ratio.
const ThumbnailWidth = 14

const (
	opBase64  = "base64"
	opPalette = "palette"
)

// Resizer loads the image at path, resizes it to width pixels with an
// aspect-preserving height and returns the re-encoded bytes in the source
// format family.
type Resizer interface {
	Resize(ctx context.Context, path string, width int) ([]byte, error)
}

// Quantizer loads the image at path and computes its named dominant color
// swatches. The order of the returned slice is the enumeration order used to
// break popularity ties.
type Quantizer interface {
	Swatches(ctx context.Context, path string) ([]Swatch, error)
}

// Generator produces thumbnails and palettes through its collaborators.
// A Generator is safe for concurrent use.
type Generator struct {
	resizer   Resizer
	quantizer Quantizer
	log       *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithResizer replaces the default image-processing collaborator.
func WithResizer(r Resizer) Option {
	return func(g *Generator) { g.resizer = r }
}

// WithQuantizer replaces the default color-quantization collaborator.
func WithQuantizer(q Quantizer) Option {
	return func(g *Generator) { g.quantizer = q }
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator. Without options it uses imaging.Thumbnailer and
// imaging.VibrantQuantizer with default settings.
func New(opts ...Option) *Generator {
	g := &Generator{
		resizer:   imaging.NewThumbnailer(),
		quantizer: imaging.NewVibrantQuantizer(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Base64 returns a ThumbnailWidth pixel wide version of the image at path as
// a data URI.
//
// Only jpeg, jpg and png extensions are accepted, matched case-sensitively.
// Any other extension, including none, fails with *UnsupportedFormatError
// before the file is touched. Errors from the Resizer are returned unchanged.
func (g *Generator) Base64(ctx context.Context, path string) (string, error) {
	mime, err := validateFormat(path)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := g.resizer.Resize(ctx, path, ThumbnailWidth)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &EmptyResultError{Op: opBase64}
	}

	g.log.Debug("thumbnail encoded",
		zap.String("path", path),
		zap.String("mime", mime),
		zap.Int("bytes", len(data)))

	return DataURI(mime, data), nil
}

// Palette returns the hex colors of the dominant swatches of the image at
// path, most popular first.
//
// The format is not validated here; the Quantizer decides what it can read.
// Errors from the Quantizer are returned unchanged.
func (g *Generator) Palette(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	swatches, err := g.quantizer.Swatches(ctx, path)
	if err != nil {
		return nil, err
	}
	palette := ToPalette(swatches)
	if len(palette) == 0 {
		return nil, &EmptyResultError{Op: opPalette}
	}

	g.log.Debug("palette extracted",
		zap.String("path", path),
		zap.Int("swatches", len(swatches)),
		zap.Strings("palette", palette))

	return palette, nil
}

var defaultGenerator = New()

// Base64 calls Base64 on a Generator with default collaborators.
func Base64(ctx context.Context, path string) (string, error) {
	return defaultGenerator.Base64(ctx, path)
}

// Palette calls Palette on a Generator with default collaborators.
func Palette(ctx context.Context, path string) ([]string, error) {
	return defaultGenerator.Palette(ctx, path)
}
