// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	RootSetupFailedId Id = iota + 1
	ToolNotFoundId
	PayloadInvalidId
	ConfigLoadFailedId
	InputNotFoundId
	BundleFailedId
)

type MarkdownMsg string

type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue as terminal markdown. stylePath is a glamour
// style name ("auto", "dark", "light", "notty") or a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	rootSetupFailedIssue = &Issue{
		id: RootSetupFailedId,
		mdMsg: `
# Cannot prepare the bundle root!

Every bundle is created as a tmp_<N> folder under the root directory. The root
is created when missing and **emptied** when it already has content.

## Things you can try:
- Check that the parent directory exists and is writable
- Point the root somewhere else:
~~~
$ latexprep --root /var/tmp/latexprep prepare text main.tex --text hello
~~~
- Or set it in your config file:
~~~cue
root_dir: "/var/tmp/latexprep"
~~~`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# External tool not found!

Bundles are prepared with git, tar and inkscape. One of them could not be started.

## Things you can try:
- Install the missing tool and make sure it is on your PATH
- Or configure an absolute path:
~~~cue
tools: {
	git:      "/usr/bin/git"
	tar:      "/usr/bin/tar"
	inkscape: "/opt/inkscape/bin/inkscape"
}
~~~
- Environment variables work too: LATEXPREP_TOOLS_INKSCAPE=/opt/inkscape/bin/inkscape`,
	}

	payloadInvalidIssue = &Issue{
		id: PayloadInvalidId,
		mdMsg: `
# Invalid document payload!

A JSON document payload must look like this:

~~~json
{
  "text": "\\documentclass{article} ...",
  "images": [
    {
      "name": "figure.svg",
      "imageDataUrl": "data:image/svg+xml;base64,PHN2Zy8+",
      "transform": {"export-png": "figure.png", "export-width": 640}
    }
  ]
}
~~~

## Rules:
- "text" is required
- image names are plain file names (no "/" and not "." or "..")
- "transform" is optional; supported keys are export-png, export-area,
  export-width and export-height`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Search locations (in order of precedence):
1. The file given with --config
2. $XDG_CONFIG_HOME/latexprep/config.cue
3. ./config.cue

## Things you can try:
- Print the effective configuration:
~~~
$ latexprep config show
~~~
- Print the file that is being read:
~~~
$ latexprep config path
~~~`,
	}

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Input file not found!

The archive or payload file passed on the command line does not exist.

## Things you can try:
- Check the path and your current directory
- Use an absolute path`,
	}

	bundleFailedIssue = &Issue{
		id: BundleFailedId,
		mdMsg: `
# The bundle could not be prepared!

An internal step failed (writing files, validating image transforms or running
inkscape). The details are only shown in the log.

## Things you can try:
- Re-run with --verbose to see the cause
- Check free disk space under the bundle root
- Check the transform options of every image`,
	}

	issues = map[Id]*Issue{
		rootSetupFailedIssue.Id():  rootSetupFailedIssue,
		toolNotFoundIssue.Id():     toolNotFoundIssue,
		payloadInvalidIssue.Id():   payloadInvalidIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		inputNotFoundIssue.Id():    inputNotFoundIssue,
		bundleFailedIssue.Id():     bundleFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(issues))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
