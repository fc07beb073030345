package codec

import "strings"

// Codec identifies a decoder.
type Codec int

const (
	// None means no Content-Encoding was declared.
	None Codec = iota

	// Gzip is the gzip file format (RFC 1952).
	Gzip

	// Brotli is the Brotli format (RFC 7932).
	Brotli

	// Deflate is zlib-wrapped (RFC 1950) or raw (RFC 1951) deflate data.
	Deflate

	// Unknown is a declared encoding with no decoder.
	Unknown
)

// String returns the encoding token of the codec.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Brotli:
		return "br"
	case Deflate:
		return "deflate"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// precedence lists the codecs matched against a header, in order.
// A header naming several codecs selects the first match.
var precedence = []struct {
	token string
	codec Codec
}{
	{token: "gzip", codec: Gzip},
	{token: "br", codec: Brotli},
	{token: "deflate", codec: Deflate},
}

// Encoding is a parsed Content-Encoding header.
type Encoding struct {
	// Codec is the selected decoder.
	Codec Codec

	// Raw is the trimmed header value as received.
	Raw string
}

// Declared reports whether the response declared any encoding.
func (e Encoding) Declared() bool {
	return e.Codec != None
}

// Decodable reports whether a decoder exists for the encoding.
func (e Encoding) Decodable() bool {
	return e.Codec == Gzip || e.Codec == Brotli || e.Codec == Deflate
}

// Parse parses a Content-Encoding header value.
// Matching is by substring on the lowercased value, so "x-gzip" selects gzip.
// An empty value parses to None; a value matching no codec parses to Unknown.
func Parse(header string) Encoding {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return Encoding{Codec: None}
	}

	lower := strings.ToLower(raw)
	for _, p := range precedence {
		if strings.Contains(lower, p.token) {
			return Encoding{Codec: p.codec, Raw: raw}
		}
	}

	return Encoding{Codec: Unknown, Raw: raw}
}
