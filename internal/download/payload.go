// SPDX-License-Identifier: MPL-2.0

package download

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Code-Poets/latex-online/pkg/cueutil"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// MaxPayloadSize bounds a JSON assembly payload; images are inlined.
const MaxPayloadSize int64 = 64 << 20

//go:embed payload_schema.cue
var payloadSchema []byte

type (
	// Payload describes a document assembled from literal text and images.
	Payload struct {
		Text   string  `json:"text"`
		Images []Image `json:"images"`
	}

	// Image is one embedded image.
	Image struct {
		Name         types.FileName `json:"name"`
		ImageDataURL string         `json:"imageDataUrl"`
		// Transform stays raw until assembly so that a bad option fails the
		// job rather than the decode.
		Transform json.RawMessage `json:"transform,omitempty"`
	}
)

// DecodePayload validates data against the payload schema and decodes it.
// filename is used in error messages.
func DecodePayload(data []byte, filename string) (*Payload, error) {
	if _, err := cueutil.Validate(payloadSchema, data, "#Payload",
		cueutil.WithFilename(filename),
		cueutil.WithMaxFileSize(MaxPayloadSize),
	); err != nil {
		return nil, &InvalidPayloadError{Cause: err}
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &InvalidPayloadError{Cause: fmt.Errorf("%s: %w", filename, err)}
	}
	for i, img := range p.Images {
		if err := img.Name.Validate(); err != nil {
			return nil, &InvalidPayloadError{Cause: fmt.Errorf("%s: images[%d]: %w", filename, i, err)}
		}
	}
	return &p, nil
}
