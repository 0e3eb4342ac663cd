// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// Response statuses carried in every envelope.
const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// envelope is the top-level JSON wrapper used for all API responses:
// {"status": "success"|"fail"|"error", "message": "...", "data": {...}}.
// Data is only present on successful responses that carry a payload.
type envelope struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Data    payload `json:"data,omitempty"`
}

// payload holds the named values nested under "data", e.g. {"bookId": "..."}.
type payload map[string]any

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Book ids are opaque strings, so the only check is that one was supplied.
func (app *applicationDependencies) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

// readString reads a string query parameter from qs. The second result reports
// whether the key was present with a non-empty value.
func (app *applicationDependencies) readString(qs url.Values, key string) (string, bool) {
	s := qs.Get(key)
	if s == "" {
		return "", false
	}
	return s, true
}

// readBool reads a boolean-ish query parameter from qs. It returns nil when the
// key is absent. Numeric values are true when non-zero (NaN is false), "true"
// and "false" are taken literally, an empty value is false and any other text
// is true.
func (app *applicationDependencies) readBool(qs url.Values, key string) *bool {
	if !qs.Has(key) {
		return nil
	}
	b := parseBool(qs.Get(key))
	return &b
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0 && !math.IsNaN(f)
	}
	if strings.EqualFold(s, "false") {
		return false
	}
	return true
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit and ensures the body contains exactly one
// JSON value (no trailing data). Decoder errors are rewritten into Indonesian
// messages that are safe to show to the client.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Cap the request body to 1 MB to prevent large-payload attacks.
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("Format JSON tidak valid (karakter ke-%d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("Format JSON tidak valid")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("Tipe data untuk %s tidak sesuai", unmarshalTypeError.Field)
			}
			return fmt.Errorf("Tipe data tidak sesuai (karakter ke-%d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("Body permintaan tidak boleh kosong")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("Body permintaan tidak boleh lebih dari %d byte", maxBytesError.Limit)
		default:
			return errors.New("Body permintaan tidak dapat dibaca")
		}
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("Body permintaan hanya boleh berisi satu nilai JSON")
	}

	return nil
}
