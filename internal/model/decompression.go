package model

// DecompressionResult is the outcome of decoding a response body.
//
// Attempted is false when no encoding was declared or the declared encoding
// is not one the dispatcher can decode. When Attempted is true, exactly one
// of Decoded (on success) or Note (on failure) is meaningful.
type DecompressionResult struct {
	// Attempted reports whether a decoder was run.
	Attempted bool

	// Succeeded reports whether the decoder finished without error.
	Succeeded bool

	// Decoded holds the decoded bytes when Succeeded is true.
	Decoded []byte

	// Note explains a failed or skipped decode.
	Note string
}

// DecodedSize returns the decoded length and whether it is known.
func (r DecompressionResult) DecodedSize() (int, bool) {
	if !r.Attempted || !r.Succeeded {
		return 0, false
	}
	return len(r.Decoded), true
}
