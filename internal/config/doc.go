// Package config provides configuration structures and utilities for compcheck.
// It defines the fetch settings handed to the fetcher at construction, the
// HTTP server settings, the output preferences of the check command, and the
// YAML configuration file that can supply any of them.
package config
