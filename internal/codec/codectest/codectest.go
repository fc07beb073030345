// Package codectest provides encoders for building compressed fixtures in tests.
package codectest

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Payload returns a compressible text of at least n bytes.
func Payload(n int) []byte {
	const line = "The quick brown fox jumps over the lazy dog. 0123456789\n"
	return []byte(strings.Repeat(line, n/len(line)+1))
}

// Gzip compresses data in the gzip format.
func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	write(t, w, data)
	return buf.Bytes()
}

// Zlib compresses data in the zlib format, which is what most servers send
// for "deflate".
func Zlib(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	write(t, w, data)
	return buf.Bytes()
}

// RawDeflate compresses data as a raw deflate stream without zlib framing.
func RawDeflate(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate writer: %v", err)
	}
	write(t, w, data)
	return buf.Bytes()
}

// Brotli compresses data in the Brotli format.
func Brotli(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	write(t, w, data)
	return buf.Bytes()
}

func write(t testing.TB, w io.WriteCloser, data []byte) {
	t.Helper()
	if _, err := w.Write(data); err != nil {
		t.Fatalf("compress write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("compress close: %v", err)
	}
}
