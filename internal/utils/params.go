package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
)

// PathInt64 parses a positive integer path parameter.
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequestError("Invalid " + name).WithError(err)
	}

	return id, nil
}

// QueryInt64 parses a required positive integer query parameter.
func QueryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, errors.AddValidationError(name, "is required")
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.AddValidationError(name, "must be a positive integer")
	}

	return v, nil
}

// OptionalQueryInt64 parses an optional non-negative integer query parameter.
// A missing parameter yields nil; zero is a valid value.
func OptionalQueryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, errors.AddValidationError(name, "must be a non-negative integer")
	}

	return &v, nil
}
