// Command odds is the Odds semantic analyzer's CLI entrypoint: a top
// level command with per-command subcommands and flags. A project
// manifest is preferred when present, but a single source file named
// on the command line is always accepted as a fallback.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"odds/pkg/analyzer"
	"odds/pkg/ast"
	"odds/pkg/config"
	"odds/pkg/parser"
	"odds/pkg/printer"
)

var version = "0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "odds",
		Usage:   "semantic analyzer for the Odds language",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "resolve, infer and alpha-rename a program, reporting the first semantic error found",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "print", Usage: "print the checked program on success"},
					&cli.BoolFlag{Name: "emit-ast", Usage: "print the parsed (untyped) AST as JSON instead of checking it"},
				},
				Action: checkAction,
			},
			{
				Name:      "run-checks",
				Usage:     "check every file given on the command line, reporting all failures",
				ArgsUsage: "<file> [file...]",
				Action:    runChecksAction,
			},
			{
				Name:   "version",
				Usage:  "print odds version",
				Action: versionAction,
			},
		},
		Action: checkAction,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// checkAction resolves the source file to analyze either from
// odds.yml's entry field, when present in the current directory, or
// from the first positional argument, and runs the full parse-check
// pipeline against it.
func checkAction(ctx context.Context, cmd *cli.Command) error {
	fileName, manifest, err := resolveEntry(cmd)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("odds: read %s: %w", fileName, err)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return fmt.Errorf("odds: %w", err)
	}

	if cmd.Bool("emit-ast") {
		return emitAST(program)
	}

	stmts, err := analyzer.CheckProgram(program)
	if err != nil {
		var semErr *analyzer.SemanticError
		if errors.As(err, &semErr) {
			return fmt.Errorf("odds: %s: %s", semErr.Kind, semErr.Message)
		}
		return fmt.Errorf("odds: %w", err)
	}

	if cmd.Bool("print") || (manifest != nil && manifest.EmitTypedAST) {
		fmt.Println(printer.Print(stmts))
	}
	return nil
}

// emitAST prints the parsed program's untyped AST as JSON, relying on
// the json tags declared on every pkg/ast node.
func emitAST(program *ast.Program) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(program)
}

// runChecksAction checks every file named on the command line
// independently and reports a pass/fail summary, exiting non-zero if
// any file failed. Unlike checkAction it never consults odds.yml —
// each argument is checked as a standalone entry point.
func runChecksAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("odds: run-checks requires at least one file")
	}

	failed := 0
	for _, fileName := range cmd.Args().Slice() {
		if err := checkFile(fileName); err != nil {
			fmt.Fprintf(os.Stderr, "%s: FAIL: %v\n", fileName, err)
			failed++
			continue
		}
		fmt.Printf("%s: OK\n", fileName)
	}

	if failed > 0 {
		return fmt.Errorf("odds: %d of %d file(s) failed", failed, cmd.NArg())
	}
	return nil
}

func checkFile(fileName string) error {
	source, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	program, err := parser.Parse(string(source))
	if err != nil {
		return err
	}
	_, err = analyzer.CheckProgram(program)
	if err != nil {
		var semErr *analyzer.SemanticError
		if errors.As(err, &semErr) {
			return fmt.Errorf("%s: %s", semErr.Kind, semErr.Message)
		}
		return err
	}
	return nil
}

// resolveEntry prefers odds.yml's entry field when it exists in the
// working directory, and otherwise requires exactly one positional
// file argument.
func resolveEntry(cmd *cli.Command) (string, *config.Manifest, error) {
	manifest, err := config.LoadFromDir(".")
	if err != nil {
		return "", nil, fmt.Errorf("odds: %w", err)
	}
	if manifest != nil {
		return manifest.Entry, manifest, nil
	}

	if cmd.NArg() == 0 {
		return "", nil, errors.New("odds: no odds.yml found and no file given; usage: odds check <file>")
	}
	return cmd.Args().Get(0), nil, nil
}

func versionAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Printf("odds v%s\n", version)
	return nil
}
