// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Code-Poets/latex-online/pkg/types"
)

const (
	// NameExportPNG selects PNG export to the given file name.
	NameExportPNG OptionName = "export-png"
	// NameExportArea restricts export to a rectangle in user units.
	NameExportArea OptionName = "export-area"
	// NameExportWidth sets the bitmap width in pixels.
	NameExportWidth OptionName = "export-width"
	// NameExportHeight sets the bitmap height in pixels.
	NameExportHeight OptionName = "export-height"
)

type (
	// OptionName is the JSON key of a transform option.
	OptionName string

	// Option is one validated transform option.
	Option interface {
		// Name returns the JSON key the option was decoded from.
		Name() OptionName
		// Flag renders the option as a single Inkscape command-line flag.
		Flag() string

		isOption()
	}

	// ExportPNG exports the image as PNG into the bundle folder.
	ExportPNG struct {
		FileName types.FileName
	}

	// ExportArea exports the rectangle (X0,Y0)-(X1,Y1).
	ExportArea struct {
		X0, Y0, X1, Y1 int
	}

	// ExportWidth sets the exported bitmap width.
	ExportWidth struct {
		Pixels int
	}

	// ExportHeight sets the exported bitmap height.
	ExportHeight struct {
		Pixels int
	}
)

// Names lists every supported option key.
func Names() []OptionName {
	return []OptionName{NameExportPNG, NameExportArea, NameExportWidth, NameExportHeight}
}

// JoinNames lists every supported option key separated by sep.
func JoinNames(sep string) string {
	names := Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, sep)
}

// String returns the string representation of the OptionName.
func (n OptionName) String() string { return string(n) }

// Name implements Option.
func (ExportPNG) Name() OptionName { return NameExportPNG }

// Flag implements Option.
func (o ExportPNG) Flag() string { return "--export-png=" + string(o.FileName) }

// Name implements Option.
func (ExportArea) Name() OptionName { return NameExportArea }

// Flag implements Option.
func (o ExportArea) Flag() string {
	return fmt.Sprintf("--export-area=%d:%d:%d:%d", o.X0, o.Y0, o.X1, o.Y1)
}

// Name implements Option.
func (ExportWidth) Name() OptionName { return NameExportWidth }

// Flag implements Option.
func (o ExportWidth) Flag() string { return "--export-width=" + strconv.Itoa(o.Pixels) }

// Name implements Option.
func (ExportHeight) Name() OptionName { return NameExportHeight }

// Flag implements Option.
func (o ExportHeight) Flag() string { return "--export-height=" + strconv.Itoa(o.Pixels) }

func (ExportPNG) isOption()    {}
func (ExportArea) isOption()   {}
func (ExportWidth) isOption()  {}
func (ExportHeight) isOption() {}

// Flags renders opts in order.
func Flags(opts []Option) []string {
	flags := make([]string, 0, len(opts))
	for _, opt := range opts {
		switch o := opt.(type) {
		case ExportPNG:
			flags = append(flags, o.Flag())
		case ExportArea:
			flags = append(flags, o.Flag())
		case ExportWidth:
			flags = append(flags, o.Flag())
		case ExportHeight:
			flags = append(flags, o.Flag())
		default:
			panic(fmt.Sprintf("transform: unhandled option type %T", opt))
		}
	}
	return flags
}
