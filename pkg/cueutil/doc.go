// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE schema utilities.
//
// Both the configuration file and the json-assembly payload are checked against
// embedded CUE schemas using the same three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data (CUE or JSON) and unify it with a schema definition
//  3. Validate, and optionally decode to a Go value
//
// # Usage
//
//	//go:embed payload_schema.cue
//	var payloadSchema []byte
//
//	if _, err := cueutil.Validate(payloadSchema, body, "#Payload",
//	    cueutil.WithFilename("payload.json"),
//	); err != nil {
//	    return nil, err // error carries JSON-path prefixes
//	}
package cueutil
