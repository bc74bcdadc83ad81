// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/Code-Poets/latex-online/cmd/latexprep"

func main() {
	cmd.Execute()
}
