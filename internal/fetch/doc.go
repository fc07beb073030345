// Package fetch issues the outbound GET request of a compression check.
//
// A Fetcher asks for every encoding the codec package can decode, disables
// transparent decompression so the body is read exactly as transferred,
// and bounds the whole exchange (round trip and body read) by a single
// deadline. Failures are returned as *model.CheckError values classified
// as timeout, network or HTTP status errors.
package fetch
