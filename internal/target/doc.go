// Package target turns the caller-supplied target string into the absolute
// URL that the fetcher requests.
//
// Normalization only adds what is missing (the http scheme) and puts the
// authority into canonical form: lowercase scheme and host, IDN hosts in
// their ASCII (punycode) form, default ports removed. Path, query and
// fragment are never rewritten, so normalizing twice yields the same string.
package target
