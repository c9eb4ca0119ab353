package validator

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

var ErrInvalidJSON = errors.New("request body must be valid JSON")

// DecodeJSON reads the request body into dst. An empty body leaves dst untouched so handlers
// report the missing fields themselves.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidJSON
	}
	return nil
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// FirstMissing returns the name of the first blank field, in argument order, or "".
func FirstMissing(fields ...[2]string) string {
	for _, f := range fields {
		if !ValidateRequired(f[1]) {
			return f[0]
		}
	}
	return ""
}
