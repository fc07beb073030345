package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/nao1215/compcheck/internal/model"
)

// Decode decodes body according to enc.
// limit caps the decoded size in bytes; zero or negative means no cap.
// Zero-length input decodes to zero-length output for every codec.
// Errors are *DecodeError.
func Decode(enc Encoding, body []byte, limit int64) ([]byte, error) {
	if !enc.Decodable() {
		return nil, &DecodeError{Encoding: enc.Raw, Err: ErrNoDecoder}
	}
	if len(body) == 0 {
		return []byte{}, nil
	}

	rc, err := newReader(enc.Codec, body)
	if err != nil {
		return nil, &DecodeError{Encoding: enc.Raw, Err: err}
	}
	defer rc.Close()

	out, err := readLimited(rc, limit)
	if err != nil {
		return nil, &DecodeError{Encoding: enc.Raw, Err: err}
	}
	return out, nil
}

// Dispatch parses header, decodes body and records the outcome.
// It never returns an error: decode failures become a result with
// Attempted set and Succeeded unset.
func Dispatch(header string, body []byte, limit int64) model.DecompressionResult {
	enc := Parse(header)

	switch enc.Codec {
	case None:
		return model.DecompressionResult{}
	case Unknown:
		return model.DecompressionResult{
			Note: fmt.Sprintf("unsupported Content-Encoding %q; body not decoded", enc.Raw),
		}
	case Gzip, Brotli, Deflate:
		decoded, err := Decode(enc, body, limit)
		if err != nil {
			return model.DecompressionResult{Attempted: true, Note: err.Error()}
		}
		return model.DecompressionResult{Attempted: true, Succeeded: true, Decoded: decoded}
	default:
		return model.DecompressionResult{Note: fmt.Sprintf("unknown codec %d", enc.Codec)}
	}
}

// newReader returns a decompressing reader over body.
func newReader(c Codec, body []byte) (io.ReadCloser, error) {
	src := bytes.NewReader(body)

	switch c {
	case Gzip:
		return gzip.NewReader(src)
	case Brotli:
		return io.NopCloser(brotli.NewReader(src)), nil
	case Deflate:
		if isZlibHeader(body) {
			return zlib.NewReader(src)
		}
		return flate.NewReader(src), nil
	default:
		return nil, ErrNoDecoder
	}
}

// isZlibHeader reports whether b starts with a valid zlib header:
// compression method 8 and a header checksum divisible by 31 (RFC 1950).
// Servers disagree on whether "deflate" means zlib or raw deflate.
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	if cmf&0x0f != 8 || cmf>>4 > 7 {
		return false
	}
	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// readLimited reads r to EOF, failing once more than limit bytes are read.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrDecodedTooLarge, limit)
	}
	return out, nil
}
