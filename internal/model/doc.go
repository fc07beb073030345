// Package model defines the data structures shared by the compression check
// pipeline.
//
// This package contains the following main types:
//   - Check: The per-request state threaded through pipeline steps
//   - FetchOutcome: The raw response captured by the fetcher
//   - DecompressionResult: The outcome of decoding the response body
//   - CompressionReport: The final report returned to callers
//   - CheckError: The caller-visible error taxonomy
//
// Every value here is created fresh for one check and discarded afterwards.
// CompressionReport is the JSON document served by the HTTP endpoint.
package model
