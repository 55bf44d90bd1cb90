// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLexCommand(t *testing.T) {
	out, err := runCmd(t, "fixum x = 1", "lex")
	if err != nil {
		t.Fatalf("lex command failed: %v", err)
	}
	if !strings.Contains(out, `"tag": "Keyword"`) {
		t.Errorf("got %q, want a Keyword tag entry", out)
	}
}

func TestParseCommand(t *testing.T) {
	out, err := runCmd(t, "fixum numerus x = 1", "parse")
	if err != nil {
		t.Fatalf("parse command failed: %v", err)
	}
	if !strings.Contains(out, `"_type": "Modulus"`) {
		t.Errorf("got %q, want a Modulus discriminator", out)
	}
}

func TestEmitFabCommand(t *testing.T) {
	out, err := runCmd(t, "fixum numerus x = 1", "emit", "-t", "fab")
	if err != nil {
		t.Fatalf("emit command failed: %v", err)
	}
	if !strings.Contains(out, "fixum numerus x") {
		t.Errorf("got %q, want canonical faber source", out)
	}
}

func TestEmitPyCommand(t *testing.T) {
	out, err := runCmd(t, "fixum numerus x = 1", "emit", "-t", "py")
	if err != nil {
		t.Fatalf("emit command failed: %v", err)
	}
	if !strings.Contains(out, "x: int = 1") {
		t.Errorf("got %q, want lowered python source", out)
	}
}

func TestEmitUnknownTarget(t *testing.T) {
	_, err := runCmd(t, "fixum x = 1", "emit", "-t", "rust")
	if err == nil {
		t.Fatal("expected an error for an unknown emit target")
	}
}

func TestLexCommandSyntaxError(t *testing.T) {
	_, err := runCmd(t, "`", "lex")
	if err == nil {
		t.Fatal("expected a lex error for an unrecognized byte")
	}
}
