// SPDX-License-Identifier: MPL-2.0

// Package datauri decodes RFC 2397 data URIs carrying inline image bytes.
package datauri

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

const (
	// EncodingBase64 marks a ";base64" payload.
	EncodingBase64 = dataurl.EncodingBase64
	// EncodingPercent marks a percent-encoded (URL-escaped) payload.
	EncodingPercent = dataurl.EncodingASCII
)

// ErrMalformed is the sentinel error wrapped by MalformedError.
var ErrMalformed = errors.New("malformed data URI")

type (
	// Resource is a decoded data URI.
	Resource struct {
		// ContentType is the full media type, e.g. "image/svg+xml;charset=utf-8".
		ContentType string
		// Encoding is EncodingBase64 or EncodingPercent.
		Encoding string
		// Data holds the decoded bytes.
		Data []byte
	}

	// MalformedError is returned when input is not a decodable data URI.
	MalformedError struct {
		Cause error
	}
)

// Error implements the error interface for MalformedError.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed data URI: %v", e.Cause)
}

// Unwrap returns ErrMalformed for errors.Is() compatibility.
func (e *MalformedError) Unwrap() error { return ErrMalformed }

// Parse decodes a data URI.
func Parse(s string) (*Resource, error) {
	if !strings.HasPrefix(strings.ToLower(s), "data:") {
		return nil, &MalformedError{Cause: errors.New(`missing "data:" scheme`)}
	}

	du, err := dataurl.DecodeString(s)
	if err != nil {
		return nil, &MalformedError{Cause: err}
	}

	return &Resource{
		ContentType: du.ContentType(),
		Encoding:    du.Encoding,
		Data:        du.Data,
	}, nil
}
