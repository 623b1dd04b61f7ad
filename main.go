// Package main is the entry point of the ccris-extract CLI.
package main

import (
	"fmt"
	"os"

	"fjacquet/ccris-extract/cmd/batch"
	"fjacquet/ccris-extract/cmd/extract"
	"fjacquet/ccris-extract/cmd/months"
	"fjacquet/ccris-extract/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(months.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
