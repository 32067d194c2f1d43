package lqip

import "errors"

var (
	// ErrUnsupportedFormat is matched by every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEmptyResult is matched by every *EmptyResultError.
	ErrEmptyResult = errors.New("empty result")
)

// UnsupportedFormatError is returned when a file extension is absent or not
// one of the supported formats. The message is fixed apart from the version.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return "Error: Input file is missing or of an unsupported image format lqip v" + Version
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// EmptyResultError is returned when a collaborator completes without error
// but yields no usable data.
type EmptyResultError struct {
	// Op is the operation that received the empty result: "base64" or "palette".
	Op string
}

func (e *EmptyResultError) Error() string {
	switch e.Op {
	case opBase64:
		return "unexpected empty encode result"
	case opPalette:
		return "unexpected empty palette result"
	default:
		return "unexpected empty result in " + e.Op
	}
}

// Is reports whether target is ErrEmptyResult.
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}
