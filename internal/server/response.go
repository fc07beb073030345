package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nao1215/compcheck/internal/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// errorMapping maps an error kind to the caller-visible status and title.
type errorMapping struct {
	kind   error
	status int
	title  string
}

// errorMappings is ordered; the first matching kind wins.
var errorMappings = []errorMapping{
	{kind: model.ErrMissingParameter, status: http.StatusBadRequest, title: "URL parameter is required."},
	{kind: model.ErrInvalidURL, status: http.StatusBadRequest, title: "Invalid URL provided."},
	{kind: model.ErrHTTPStatus, status: http.StatusBadRequest, title: "Failed to access the page."},
	{kind: model.ErrTimeout, status: http.StatusGatewayTimeout, title: "Request Timeout"},
	{kind: model.ErrNetwork, status: http.StatusInternalServerError, title: "A critical network error occurred."},
}

// unexpectedTitle is the title of errors outside the check taxonomy.
const unexpectedTitle = "An unexpected error occurred."

// errorResponse returns the status and body for err.
func errorResponse(err error) (int, ErrorResponse) {
	details := err.Error()
	var checkErr *model.CheckError
	if errors.As(err, &checkErr) && checkErr.Detail != "" {
		details = checkErr.Detail
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			return m.status, ErrorResponse{Error: m.title, Details: details}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: unexpectedTitle, Details: details}
}

// writeJSON writes v as the JSON body of a response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}
