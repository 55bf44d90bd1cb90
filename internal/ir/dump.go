// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ir provides the JSON-serializable shape spec.md §6 requires for
// the "lex" and "parse" debug-dump subcommands: a token array with Latin
// field names (tag/value/locus) and a module tree where every node carries
// a "_type" discriminator. Grounded in spec.md §6's worked examples; there
// is no teacher equivalent since the teacher's encoder (encoder/encoder.go)
// serializes to the TADL markup surface, not to a generic JSON tree — this
// is one of the few parts of the repo built directly against the spec
// rather than adapted from teacher code, recorded in DESIGN.md.
package ir

import (
	"fmt"
	"reflect"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/diag"
	"github.com/faberlang/faber/internal/token"
)

// TokenView is the JSON shape of a single token in the "lex" dump.
type TokenView struct {
	Tag   string     `json:"tag"`
	Value string     `json:"value"`
	Locus LocusView  `json:"locus"`
}

// LocusView is the JSON shape of a diag.Locus: line/column/byte-offset
// under spec.md's Latin field names.
type LocusView struct {
	Linea   int `json:"linea"`
	Columna int `json:"columna"`
	Index   int `json:"index"`
}

func locusView(l diag.Locus) LocusView {
	return LocusView{Linea: l.Line, Columna: l.Col, Index: l.Index}
}

// DumpTokens converts a prepared token stream into its JSON-dump shape.
func DumpTokens(toks []token.Token) []TokenView {
	out := make([]TokenView, len(toks))
	for i, t := range toks {
		out[i] = TokenView{Tag: t.Tag.String(), Value: t.Lexeme, Locus: locusView(t.Locus)}
	}
	return out
}

// DumpNode converts any IR node into a JSON-serializable tree with a
// "_type" discriminator on every node, per spec.md §6. It walks the node's
// exported fields by reflection rather than hand-writing one marshaler per
// AST shape (there are several dozen), mirroring the way the teacher's own
// marshal.go drives serialization generically off struct tags instead of
// per-type switch statements.
func DumpNode(n ast.Node) map[string]interface{} {
	if n == nil || reflect.ValueOf(n).IsNil() {
		return nil
	}
	out := map[string]interface{}{"_type": n.TypeName()}
	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	dumpFields(v, out)
	return out
}

func dumpFields(v reflect.Value, out map[string]interface{}) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() || f.Name == "At" {
			continue
		}
		out[f.Name] = dumpValue(v.Field(i))
	}
}

func dumpValue(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if n, ok := v.Interface().(ast.Node); ok {
			return DumpNode(n)
		}
		return dumpValue(v.Elem())
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		if n, ok := v.Interface().(ast.Node); ok {
			return DumpNode(n)
		}
		return dumpValue(v.Elem())
	case reflect.Struct:
		if n, ok := addr(v); ok {
			if node, ok := n.(ast.Node); ok {
				return DumpNode(node)
			}
		}
		out := map[string]interface{}{}
		dumpFields(v, out)
		return out
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = dumpValue(v.Index(i))
		}
		return out
	case reflect.Map:
		out := map[string]interface{}{}
		iter := v.MapRange()
		for iter.Next() {
			out[fmtKey(iter.Key())] = dumpValue(iter.Value())
		}
		return out
	default:
		if v.IsValid() {
			// Node-level enums (ast.VariaSpecies, ast.IterSpecies,
			// ast.ScribeGradus, ast.LitteraSpecies) are plain `type X int`
			// with only a String() method, no MarshalJSON/MarshalText, so
			// encoding/json never consults it on its own; rendering the
			// tag string here is what spec.md §6 means by "enum-like
			// values are rendered as their tag string".
			if s, ok := v.Interface().(fmt.Stringer); ok {
				return s.String()
			}
			return v.Interface()
		}
		return nil
	}
}

// addr takes the address of an addressable struct value so type
// assertions against pointer-receiver Node implementations can succeed.
func addr(v reflect.Value) (interface{}, bool) {
	if !v.CanAddr() {
		return nil, false
	}
	return v.Addr().Interface(), true
}

func fmtKey(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}
