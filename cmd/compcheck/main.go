// Package main provides the entry point for the compcheck CLI.
//
// compcheck reports whether the HTTP response of a URL is compressed and
// how many bytes the compression saves.
//
// Usage:
//
//	compcheck check <url>
//	compcheck serve --addr :8080
//
// See --help for all available options.
package main

// main is the entry point for compcheck.
func main() {
	Execute()
}
