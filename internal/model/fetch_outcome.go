package model

import "strings"

// FetchOutcome is the response captured by the fetcher.
type FetchOutcome struct {
	// FinalURL is the URL of the response that was read. With redirect
	// following enabled it is the URL after the last hop; otherwise it is
	// the requested URL.
	FinalURL string

	// Status is the HTTP status code of the final response.
	Status int

	// Headers holds the response headers with lowercased names.
	// Repeated headers are joined with ", ".
	Headers map[string]string

	// Body is the response body exactly as transferred, before any
	// content decoding.
	Body []byte
}

// Header returns the value of the named header, matching case-insensitively.
// It returns an empty string if the header is absent.
func (o *FetchOutcome) Header(name string) string {
	if o == nil || o.Headers == nil {
		return ""
	}
	if v, ok := o.Headers[strings.ToLower(name)]; ok {
		return v
	}
	for k, v := range o.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// ContentEncoding returns the trimmed Content-Encoding header value.
func (o *FetchOutcome) ContentEncoding() string {
	return strings.TrimSpace(o.Header("Content-Encoding"))
}
