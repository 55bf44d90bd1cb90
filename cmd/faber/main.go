// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Command faber is the compiler driver: lex/parse/emit subcommands over a
// Faber source file, per spec.md §6. Subcommand dispatch uses
// github.com/spf13/cobra, grounded on the rest of the example pack's
// termfx-morfx/demo/cmd/main.go (rootCmd with subcommands, each a plain
// Run func) — the teacher itself has no CLI surface, so this is the one
// dependency in the final module adopted from outside the teacher, per
// SPEC_FULL.md's DOMAIN STACK section.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/faberlang/faber/internal/diag"
	"github.com/faberlang/faber/internal/emitfab"
	"github.com/faberlang/faber/internal/emitpy"
	"github.com/faberlang/faber/internal/ir"
	"github.com/faberlang/faber/internal/lex"
	"github.com/faberlang/faber/internal/parse"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "faber",
		Short:         "Faber compiler driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var lexFile string
	lexCmd := &cobra.Command{
		Use:   "lex",
		Short: "tokenize input and dump the token stream as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd, lexFile)
		},
	}
	lexCmd.Flags().StringVarP(&lexFile, "file", "f", "", "input file (defaults to stdin)")

	var parseFile string
	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "tokenize and parse input, dumping the module tree as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, parseFile)
		},
	}
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "input file (defaults to stdin)")

	var emitFile, emitTarget string
	emitCmd := &cobra.Command{
		Use:   "emit",
		Short: "run the full pipeline and emit surface or lowered source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, emitFile, emitTarget)
		},
	}
	emitCmd.Flags().StringVarP(&emitFile, "file", "f", "", "input file (defaults to stdin)")
	emitCmd.Flags().StringVarP(&emitTarget, "target", "t", "fab", "emit target: fab or py")

	root.AddCommand(lexCmd, parseCmd, emitCmd)
	return root
}

func readSource(stdin io.Reader, file string) (name, src string, err error) {
	if file == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", file, err)
	}
	return file, string(b), nil
}

func runLex(cmd *cobra.Command, file string) error {
	name, src, err := readSource(cmd.InOrStdin(), file)
	if err != nil {
		return reportErr(err, "")
	}
	toks, err := lex.Lex(name, src)
	if err != nil {
		return reportErr(err, src)
	}
	toks = lex.Prepare(toks)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ir.DumpTokens(toks))
}

func runParse(cmd *cobra.Command, file string) error {
	name, src, err := readSource(cmd.InOrStdin(), file)
	if err != nil {
		return reportErr(err, "")
	}
	toks, err := lex.Lex(name, src)
	if err != nil {
		return reportErr(err, src)
	}
	mod, err := parse.Parse(name, lex.Prepare(toks))
	if err != nil {
		return reportErr(err, src)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ir.DumpNode(mod))
}

func runEmit(cmd *cobra.Command, file, target string) error {
	if target != "fab" && target != "py" {
		return fmt.Errorf("unknown emit target %q (want fab or py)", target)
	}
	name, src, err := readSource(cmd.InOrStdin(), file)
	if err != nil {
		return reportErr(err, "")
	}
	toks, err := lex.Lex(name, src)
	if err != nil {
		return reportErr(err, src)
	}
	mod, err := parse.Parse(name, lex.Prepare(toks))
	if err != nil {
		return reportErr(err, src)
	}

	var out string
	if target == "py" {
		out = emitpy.Emit(mod)
	} else {
		out = emitfab.Emit(mod)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// reportErr prints a *diag.Error in spec.md §7's caret-rendered format to
// stderr and returns a plain error so cobra's SilenceErrors suppresses its
// own duplicate printing (this driver owns the exact output shape).
func reportErr(err error, src string) error {
	if derr, ok := err.(*diag.Error); ok {
		fmt.Fprintln(os.Stderr, derr.Explain(src))
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}
