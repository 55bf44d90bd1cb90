// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package project parses the faber.mod manifest — a sidecar project
// descriptor distinct from the Faber surface language itself, analogous
// to the teacher's tadl.mod. Grounded in ast/mod.go, ast/ast.go's SemVer
// capture type, and parser/parser.go's ParseModuleFile/lexer setup: a
// participle grammar built with participle.MustBuild over a stateful
// lexer, with semantic-version strings validated via golang.org/x/mod/semver.
package project

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/alecthomas/participle/v2/lexer/stateful"
	"golang.org/x/mod/semver"
)

// SemVer is a semantic-version literal, validated at parse time the way
// the teacher's ast.SemVer.Capture does.
type SemVer struct {
	Pos   lexer.Position
	Value string `@Ident`
}

func (s *SemVer) Capture(values []string) error {
	s.Value = values[0]
	if !semver.IsValid("v" + s.Value) {
		return fmt.Errorf("invalid semantic version number: %q", s.Value)
	}
	return nil
}

// Requirement is one entry of a "requires" block: a module path and the
// minimum semantic version it depends on.
type Requirement struct {
	Pos     lexer.Position
	Path    string  `@String`
	Version *SemVer `@String`
}

// Manifest is the parsed shape of a faber.mod file:
//
//	module "github.com/example/widgets" {
//	    version "1.2.3"
//	    requires (
//	        "github.com/other/module" "1.0.0"
//	    )
//	}
type Manifest struct {
	Pos      lexer.Position
	Path     string        `"module" @String "{"`
	Version  *SemVer       `"version" @String`
	Requires []Requirement `("requires" "(" @@* ")")? "}"`
}

// RequireVersion returns the declared minimum version for path, or "" if
// the manifest declares no such requirement.
func (m *Manifest) RequireVersion(path string) string {
	for _, r := range m.Requires {
		if r.Path == path {
			return r.Version.Value
		}
	}
	return ""
}

// Satisfies reports whether candidate (a bare "1.2.3"-style string,
// without the leading "v" go.mod/x-mod expect) is >= the version this
// manifest requires for path. Modeled on the teacher's reuse of
// semver.Compare for requirement resolution.
func (m *Manifest) Satisfies(path, candidate string) bool {
	want := m.RequireVersion(path)
	if want == "" {
		return true
	}
	return semver.Compare("v"+candidate, "v"+want) >= 0
}

var manifestLexer = stateful.MustSimple([]stateful.Rule{
	{Name: "comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z0-9_.\-]+`},
	{Name: "Punct", Pattern: `[{}()]`},
})

// Parse reads and parses a faber.mod manifest from r. fname is used only
// for error-location reporting.
func Parse(fname string, r io.Reader) (*Manifest, error) {
	parser := participle.MustBuild(&Manifest{},
		participle.Lexer(manifestLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace", "comment"),
		participle.UseLookahead(2),
	)

	m := &Manifest{}
	if err := parser.Parse(fname, r, m); err != nil {
		return nil, fmt.Errorf("faber.mod: %w", err)
	}
	return m, nil
}

// ParseFile opens and parses the faber.mod manifest at filename, mirroring
// the teacher's ParseModuleFile.
func ParseFile(filename string) (*Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open: %w", err)
	}
	defer f.Close()
	return Parse(filename, f)
}
