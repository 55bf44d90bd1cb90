// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	src := `module "github.com/example/widgets" {
		version "1.2.3"
		requires (
			"github.com/other/module" "1.0.0"
		)
	}`
	m, err := Parse("faber.mod", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Path != "github.com/example/widgets" {
		t.Errorf("got Path=%q, want github.com/example/widgets", m.Path)
	}
	if m.Version.Value != "1.2.3" {
		t.Errorf("got Version=%q, want 1.2.3", m.Version.Value)
	}
	if len(m.Requires) != 1 || m.Requires[0].Path != "github.com/other/module" {
		t.Fatalf("got Requires=%+v, want one entry for github.com/other/module", m.Requires)
	}
}

func TestParseManifestNoRequires(t *testing.T) {
	src := `module "solo" {
		version "0.1.0"
	}`
	m, err := Parse("faber.mod", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(m.Requires) != 0 {
		t.Errorf("got %d requirements, want 0", len(m.Requires))
	}
}

func TestManifestSatisfies(t *testing.T) {
	m := &Manifest{Requires: []Requirement{{Path: "mod/a", Version: &SemVer{Value: "1.2.0"}}}}
	if !m.Satisfies("mod/a", "1.3.0") {
		t.Error("expected 1.3.0 to satisfy a requirement of 1.2.0")
	}
	if m.Satisfies("mod/a", "1.1.0") {
		t.Error("expected 1.1.0 to not satisfy a requirement of 1.2.0")
	}
	if !m.Satisfies("mod/unknown", "0.0.1") {
		t.Error("expected no-requirement path to always be satisfied")
	}
}

func TestParseManifestInvalidVersion(t *testing.T) {
	src := `module "bad" {
		version "not-a-version"
	}`
	_, err := Parse("faber.mod", strings.NewReader(src))
	if err == nil {
		t.Fatal("expected an error for an invalid semantic version")
	}
}
