package model

import "math"

// CompressionTypeNone is the compression type reported when the response is
// not effectively compressed.
const CompressionTypeNone = "None"

// CompressionReport is the result of a compression check.
// Its JSON form is the response body of the check endpoint.
type CompressionReport struct {
	// URL is the final (post-redirect) URL of the response.
	URL string `json:"url"`

	// Status is the HTTP status code of the response.
	Status int `json:"status"`

	// IsCompressed is true only when an encoding was declared and the
	// decoded body is larger than the transferred body.
	IsCompressed bool `json:"isCompressed"`

	// CompressionType is the Content-Encoding value, or "None".
	CompressionType string `json:"compressionType"`

	// CompressedSize is the number of body bytes received on the wire.
	CompressedSize int `json:"compressedSize"`

	// UncompressedSize is the decoded body size. It equals CompressedSize
	// when nothing was decoded.
	UncompressedSize int `json:"uncompressedSize"`

	// SavingsPercent is (1 - compressed/uncompressed) * 100 rounded to two
	// decimal places.
	SavingsPercent float64 `json:"savingsPercent"`

	// Headers are the response headers with lowercased names.
	Headers map[string]string `json:"headers"`
}

// NewCompressionReport builds the report for a fetched response and its
// decode result. When the body was not decoded, or decoding failed, the
// uncompressed size falls back to the transferred size.
func NewCompressionReport(outcome *FetchOutcome, decoded DecompressionResult) *CompressionReport {
	compressedSize := len(outcome.Body)

	uncompressedSize := compressedSize
	if n, ok := decoded.DecodedSize(); ok {
		uncompressedSize = n
	}

	encoding := outcome.ContentEncoding()
	isCompressed := encoding != "" && uncompressedSize > compressedSize

	compressionType := CompressionTypeNone
	if isCompressed {
		compressionType = encoding
	}

	headers := make(map[string]string, len(outcome.Headers))
	for k, v := range outcome.Headers {
		headers[k] = v
	}

	return &CompressionReport{
		URL:              outcome.FinalURL,
		Status:           outcome.Status,
		IsCompressed:     isCompressed,
		CompressionType:  compressionType,
		CompressedSize:   compressedSize,
		UncompressedSize: uncompressedSize,
		SavingsPercent:   SavingsPercent(compressedSize, uncompressedSize),
		Headers:          headers,
	}
}

// SavingsPercent returns the share of bytes removed by compression as a
// percentage rounded to two decimals. It returns 0 when uncompressed is 0.
func SavingsPercent(compressed, uncompressed int) float64 {
	if uncompressed <= 0 {
		return 0
	}
	ratio := 1 - float64(compressed)/float64(uncompressed)
	return math.Round(ratio*100*100) / 100
}
