// Package codec maps a Content-Encoding header to a decoder and runs it.
//
// The header is parsed once into an Encoding, a closed set of codecs plus
// the raw token. When several codec names appear in one header the decoder
// is chosen by fixed precedence: gzip, then br, then deflate.
//
// Dispatch never fails. A decode error is recorded in the returned
// model.DecompressionResult so the check can still report the transferred
// size.
package codec
