// Command htmlcore is a thin CLI over the htmlcore package: render a file's
// parse tree, or run a directory of html5lib-style tree-construction
// cases and report pass/fail.
package main

import "github.com/tamarisk-labs/htmlcore/cmd/htmlcore/cli"

func main() {
	cli.Execute()
}
