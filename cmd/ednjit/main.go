// Command ednjit compiles and runs one EDN source file in process,
// mirroring the argument-handling shape of the teacher's cmd.Execute
// (github.com/ComedicChimera/olive) reduced to ednjit's flat,
// subcommand-free surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"ednjit/internal/config"
	"ednjit/internal/engine"
	"ednjit/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli := olive.NewCLI("ednjit", "ednjit compiles and executes a single EDN source file", false)
	cli.AddStringArg("filename", "f", "the EDN source file to run", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	filenameVal, ok := result.Arguments["filename"]
	if !ok {
		fmt.Fprintln(os.Stderr, "ednjit: missing required argument -f/--filename")
		return 1
	}
	path, ok := filenameVal.(string)
	if !ok || path == "" {
		fmt.Fprintln(os.Stderr, "ednjit: -f/--filename requires a file path")
		return 1
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ednjit: could not open %s: %s\n", path, err)
		return 1
	}

	cfg, err := config.Load(filepath.Dir(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ednjit: could not load ednjit.toml: %s\n", err)
		return 1
	}

	e := engine.New(cfg)
	if runErr := e.Run(path, string(source)); runErr != nil {
		if diag, ok := runErr.(*report.Diagnostic); ok {
			report.Print(diag)
		} else {
			fmt.Fprintln(os.Stderr, runErr)
		}
		return 1
	}

	return 0
}
