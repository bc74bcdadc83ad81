// SPDX-License-Identifier: MPL-2.0

// Package transform models the image post-processing options accepted by the
// json-assembly job and turns them into Inkscape command lines.
//
// The set of options is closed: Option is implemented only by ExportPNG,
// ExportArea, ExportWidth and ExportHeight. Parse decodes a transform object
// in document order and rejects unknown keys and badly typed parameters with
// an *OptionError, so flag assembly never sees an invalid value.
package transform
