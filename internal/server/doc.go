// Package server exposes the compression check over HTTP.
//
// GET /api/check?url=<target> runs a check and answers with the JSON
// CompressionReport. Every response of that endpoint, including preflight
// and error responses, carries permissive CORS headers. Failures are
// answered with {"error": ..., "details": ...} and a status derived from the
// error kind. GET /healthz is a liveness probe.
package server
