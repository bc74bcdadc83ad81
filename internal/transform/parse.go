// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Code-Poets/latex-online/pkg/types"
)

// areaKeys are the bounds an export-area object must carry, in flag order.
var areaKeys = [...]string{"x0", "y0", "x1", "y1"}

// Parse decodes a transform object into options, preserving key order.
// An empty or null transform yields no options.
func Parse(raw json.RawMessage) ([]Option, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransform, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidTransform)
	}

	var opts []Option
	seen := make(map[OptionName]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTransform, err)
		}
		name := OptionName(keyTok.(string))

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTransform, err)
		}

		if seen[name] {
			return nil, &OptionError{Option: name, Cause: fmt.Errorf("%w: duplicate key", ErrInvalidOptionValue)}
		}
		seen[name] = true

		opt, err := parseOption(name, value)
		if err != nil {
			return nil, &OptionError{Option: name, Cause: err}
		}
		opts = append(opts, opt)
	}

	return opts, nil
}

func parseOption(name OptionName, value json.RawMessage) (Option, error) {
	switch name {
	case NameExportPNG:
		var fileName string
		if err := decodeString(value, &fileName); err != nil {
			return nil, err
		}
		fn := types.FileName(fileName)
		if err := fn.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOptionValue, err)
		}
		return ExportPNG{FileName: fn}, nil
	case NameExportArea:
		return parseArea(value)
	case NameExportWidth:
		px, err := parsePositiveInt(value)
		if err != nil {
			return nil, err
		}
		return ExportWidth{Pixels: px}, nil
	case NameExportHeight:
		px, err := parsePositiveInt(value)
		if err != nil {
			return nil, err
		}
		return ExportHeight{Pixels: px}, nil
	default:
		return nil, fmt.Errorf("%w (valid: %s)", ErrUnknownOption, JoinNames(", "))
	}
}

func parseArea(value json.RawMessage) (Option, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(value, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: expected an object with integer x0, y0, x1, y1", ErrInvalidOptionValue)
	}

	var bounds [len(areaKeys)]int
	for i, key := range areaKeys {
		raw, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidOptionValue, key)
		}
		n, err := parseInt(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		bounds[i] = n
		delete(fields, key)
	}
	if len(fields) > 0 {
		return nil, fmt.Errorf("%w: unexpected fields %v", ErrInvalidOptionValue, slices.Sorted(maps.Keys(fields)))
	}

	return ExportArea{X0: bounds[0], Y0: bounds[1], X1: bounds[2], Y1: bounds[3]}, nil
}

func decodeString(value json.RawMessage, dst *string) error {
	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("%w: expected a string", ErrInvalidOptionValue)
	}
	return nil
}

// parseInt accepts only JSON numbers without a fractional part. Quoted
// numbers are rejected.
func parseInt(value json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(value))
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return 0, fmt.Errorf("%w: expected an integer, got %s", ErrInvalidOptionValue, s)
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, fmt.Errorf("%w: expected an integer, got %s", ErrInvalidOptionValue, s)
	}
	i, err := n.Int64()
	if err != nil || int64(int(i)) != i {
		return 0, fmt.Errorf("%w: expected an integer, got %s", ErrInvalidOptionValue, s)
	}
	return int(i), nil
}

func parsePositiveInt(value json.RawMessage) (int, error) {
	n, err := parseInt(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %d", ErrInvalidOptionValue, n)
	}
	return n, nil
}

// IsValidationError reports whether err came from option validation
// rather than from running the tool.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownOption) ||
		errors.Is(err, ErrInvalidOptionValue) ||
		errors.Is(err, ErrInvalidTransform)
}
