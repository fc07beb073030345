package codec

import (
	"errors"
	"fmt"
)

// ErrNoDecoder is returned by Decode for encodings without a decoder.
var ErrNoDecoder = errors.New("no decoder for encoding")

// ErrDecodedTooLarge is returned when the decoded body exceeds the size limit.
var ErrDecodedTooLarge = errors.New("decoded body exceeds size limit")

// DecodeError is returned when a declared encoding fails to decode.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "content decode error"
	}
	if e.Err == nil {
		return fmt.Sprintf("Content-Encoding: %s set but unable to decompress body", e.Encoding)
	}
	return fmt.Sprintf("Content-Encoding: %s set but unable to decompress body: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
