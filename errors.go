package resample

import (
	"errors"
	"fmt"
)

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

type decodeError struct {
	path  string
	cause error
}

// NewDecodeError creates an error for an image at path that could not be
// read or decoded.
func NewDecodeError(path string, cause error) error {
	return &decodeError{path: path, cause: cause}
}

func (d *decodeError) Error() string {
	if d.path == "" {
		return fmt.Sprintf("decode image: %v", d.cause)
	}
	return fmt.Sprintf("decode image %q: %v", d.path, d.cause)
}

func (d *decodeError) Unwrap() error {
	return d.cause
}

// IsDecodeError checks if the given error is a "decode" error.
func IsDecodeError(err error) bool {
	var d *decodeError
	return errors.As(err, &d)
}

type invalidScale struct {
	message string
}

func newInvalidScale(msg string, v ...interface{}) error {
	return invalidScale{fmt.Sprintf(msg, v...)}
}

func (i invalidScale) Error() string {
	return i.message
}

// IsInvalidScale checks if the given error was caused by a scale factor
// that is zero, negative, not finite or yields an empty result.
func IsInvalidScale(err error) bool {
	var i invalidScale
	return errors.As(err, &i)
}

type degenerateSource struct {
	message string
}

func newDegenerateSource(msg string, v ...interface{}) error {
	return degenerateSource{fmt.Sprintf(msg, v...)}
}

func (d degenerateSource) Error() string {
	return d.message
}

// IsDegenerateSource checks if the given error was caused by a raster
// without rows or columns, or with an inconsistent pixel buffer.
func IsDegenerateSource(err error) bool {
	var d degenerateSource
	return errors.As(err, &d)
}

type channelMismatch struct {
	want, got int
}

func (c channelMismatch) Error() string {
	return fmt.Sprintf("channel mismatch: want %d channels, got %d", c.want, c.got)
}

// IsChannelMismatch checks if the given error was caused by rasters with
// different channel counts.
func IsChannelMismatch(err error) bool {
	var c channelMismatch
	return errors.As(err, &c)
}

type sizeMismatch struct {
	message string
}

func newSizeMismatch(msg string, v ...interface{}) error {
	return sizeMismatch{fmt.Sprintf(msg, v...)}
}

func (s sizeMismatch) Error() string {
	return s.message
}

// IsSizeMismatch checks if the given error was caused by a destination
// raster with the wrong dimensions.
func IsSizeMismatch(err error) bool {
	var s sizeMismatch
	return errors.As(err, &s)
}
