// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command msgextract scans Go sources for message keys used with package
// i18n and writes a YAML catalog skeleton with source references, ready to
// be filled in for a new locale.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/tools/go/packages"
)

type ref struct {
	file string
	line int
}

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	refs        map[string][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
}

func main() {
	outPath := flag.String("o", "locales/messages.yaml", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	// We scan all buildable packages, including templ-generated Go sources.
	// templ-generated files must exist on disk before this runs.
	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		log.Fatalf("failed to load packages: %v", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, findProjectRoot(wd), findI18nPkgPaths(pkgs))

	out, err := renderSkeleton(refs)
	if err != nil {
		log.Fatalf("failed to render skeleton: %v", err)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Fatalf("failed to write output file %s: %v", *outPath, err)
	}
}

// renderSkeleton turns the extracted keys into nested YAML with empty
// message bodies and a head comment per leaf listing its source references.
func renderSkeleton(refs map[string][]ref) ([]byte, error) {
	root := map[string]any{}
	comments := yaml.CommentMap{}

	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		rs := refs[k]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		// After sorting by file and line, duplicates are adjacent.
		var locs []string

		lastFile := ""

		lastLine := 0
		for _, r := range rs {
			if r.file != lastFile || r.line != lastLine {
				locs = append(locs, fmt.Sprintf("%s:%d", r.file, r.line))

				lastFile = r.file
				lastLine = r.line
			}
		}

		if !insertLeaf(root, k) {
			log.Printf("skipping key %q: clashes with an existing entry", k)

			continue
		}

		path := "$." + k
		comments[path] = []*yaml.Comment{yaml.HeadComment(" " + strings.Join(locs, " "))}
	}

	return yaml.MarshalWithOptions(root, yaml.WithComment(comments))
}

// insertLeaf adds an empty leaf for the dot-delimited key, creating
// intermediate maps. It reports false when the key clashes with an
// existing leaf or an existing subtree.
func insertLeaf(root map[string]any, key string) bool {
	parts := strings.Split(key, ".")
	node := root

	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part]
		if !ok {
			m := map[string]any{}
			node[part] = m
			node = m

			continue
		}

		m, ok := child.(map[string]any)
		if !ok {
			return false
		}

		node = m
	}

	leaf := parts[len(parts)-1]
	if _, exists := node[leaf]; exists {
		_, isLeaf := node[leaf].(string)

		return isLeaf
	}

	node[leaf] = ""

	return true
}

// extractRefs traverses all Go source files in the given packages,
// looking for i18n function calls and message keys to extract.
func extractRefs(pkgs []*packages.Package, projectRoot string, i18nPkgPaths map[string]struct{}) map[string][]ref {
	refs := map[string][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		// Create an extractor with the context for this package's files.
		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			i18nPkgs:    i18nPkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				}

				return true
			})
		}
	}

	return refs
}

// findI18nPkgPaths returns the set of package paths in this build that
// define the i18n package with a MsgKey type whose underlying type is string.
// This lets us require that matched calls and MsgKey conversions come from
// our i18n package, regardless of how it is imported or aliased.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		// We are looking for the local i18n package.
		// The package name is "i18n", and it must define a MsgKey whose
		// underlying type is string.
		if p.Name != "i18n" || p.Types == nil {
			continue
		}

		obj := p.Types.Scope().Lookup("MsgKey")

		tn, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		basic, ok := named.Underlying().(*types.Basic)
		if ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr to a constant string if possible using types.Info.
// Handles string literals, const identifiers, and constant expressions like "a" + "b".
// Non-constant expressions return false.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKeyNamedTypeInI18n reports whether t is exactly the named type i18n.MsgKey,
// with package path present in i18nPkgs.
// Accepts both direct types and type aliases that resolve to i18n.MsgKey.
func isMsgKeyNamedTypeInI18n(t types.Type, i18nPkgs map[string]struct{}) bool {
	// For a type alias, the TypeName.Type() is the aliased type, so this check
	// still sees the real named type object behind the alias.
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := i18nPkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == "MsgKey"
}

// handleCompositeLit inspects composite literals to find implicit conversions to i18n.MsgKey.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	// Unwrap one level of pointer so &T{...} is treated as T{...}.
	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok && p.Elem() != nil {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsMK := isMsgKeyNamedTypeInI18n(u.Key(), e.i18nPkgs)

		valIsMK := isMsgKeyNamedTypeInI18n(u.Elem(), e.i18nPkgs)
		if !keyIsMK && !valIsMK {
			return
		}

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsMK {
				if msg, ok := constString(e.info, kv.Key); ok {
					e.addRef(kv.Key.Pos(), msg)
				}
			}

			if valIsMK {
				if msg, ok := constString(e.info, kv.Value); ok {
					e.addRef(kv.Value.Pos(), msg)
				}
			}
		}

	case *types.Slice, *types.Array:
		var elemType types.Type
		if s, ok := u.(*types.Slice); ok {
			elemType = s.Elem()
		} else {
			// If not a slice, it must be an array due to the case statement.
			elemType = u.(*types.Array).Elem()
		}

		if !isMsgKeyNamedTypeInI18n(elemType, e.i18nPkgs) {
			return
		}

		for _, elt := range x.Elts {
			if msg, ok := constString(e.info, elt); ok {
				e.addRef(elt.Pos(), msg)
			}
		}

	case *types.Struct:
		// To handle both keyed and positional literals, we first map field names to their types.
		// Then, for keyed elements we look up the type by name. For positional elements, we
		// rely on the declared field order.
		fieldTypes := make(map[string]types.Type, u.NumFields())
		for i := range u.NumFields() {
			f := u.Field(i)

			fieldTypes[f.Name()] = f.Type()
		}

		for i, elt := range x.Elts {
			// Keyed field: FieldName: "..."
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if id, ok := kv.Key.(*ast.Ident); ok {
					if ft, ok := fieldTypes[id.Name]; ok && isMsgKeyNamedTypeInI18n(ft, e.i18nPkgs) {
						if msg, ok := constString(e.info, kv.Value); ok {
							e.addRef(kv.Value.Pos(), msg)
						}
					}
				}

				continue
			}

			// Positional field: rely on declared field order.
			if i < u.NumFields() {
				ft := u.Field(i).Type()
				if isMsgKeyNamedTypeInI18n(ft, e.i18nPkgs) {
					if msg, ok := constString(e.info, elt); ok {
						e.addRef(elt.Pos(), msg)
					}
				}
			}
		}
	}
}

// handleCallExpr inspects function calls and type conversions to find i18n messages.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// Case 1: Type conversion, e.g., i18n.MsgKey("HomePage.title").
	// A call expression where x.Fun is a type is a type conversion.
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && isMsgKeyNamedTypeInI18n(tv.Type, e.i18nPkgs) {
			if msg, ok := constString(e.info, x.Args[0]); ok {
				e.addRef(x.Args[0].Pos(), msg)
			}
		}

		return // This was a type conversion, handled or not.
	}

	// Case 2: For function calls, check the i18n lookup functions and the
	// namespace-scoped Translator methods.
	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && fn.Pkg() != nil {
			if _, ok := e.i18nPkgs[fn.Pkg().Path()]; ok {
				if e.handleI18nCall(x, sel, fn) {
					return
				}
			}
		}
	}

	// Case 3: A generic function call with i18n.MsgKey parameters.
	// This handles implicit conversions for any function taking an i18n.MsgKey.
	// We use TypeOf because it works for qualified (pkg.Func) and unqualified (Func) calls.
	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok {
		return
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return
	}

	variadic := sig.Variadic()
	last := n - 1

	for i, arg := range x.Args {
		var pt types.Type

		if variadic && i >= last {
			// If called with ...slice, let composite literal handling discover elements.
			if x.Ellipsis != token.NoPos {
				continue
			}
			// A valid variadic signature guarantees the last param is a slice.
			pt = params.At(last).Type().(*types.Slice).Elem()
		} else {
			if i >= n {
				break // More arguments than parameters (and not variadic)
			}

			pt = params.At(i).Type()
		}

		if isMsgKeyNamedTypeInI18n(pt, e.i18nPkgs) {
			if msg, ok := constString(e.info, arg); ok {
				e.addRef(arg.Pos(), msg)
			}
		}
	}
}

// handleI18nCall records keys for i18n package functions and Translator
// methods. It reports whether the call was recognised.
func (e *extractor) handleI18nCall(x *ast.CallExpr, sel *ast.SelectorExpr, fn *types.Func) bool {
	if fn.Signature().Recv() == nil {
		switch fn.Name() {
		case "T", "Raw", "Has", "NewUserError": // f(ctx, "key", ...)
			if len(x.Args) >= 2 {
				if msg, ok := constString(e.info, x.Args[1]); ok {
					e.addRef(x.Args[1].Pos(), msg)
				}
			}

			return true
		}

		return false
	}

	// Translator methods take the key as their first argument, relative to
	// the translator's namespace.
	switch fn.Name() {
	case "T", "Rich", "Raw", "Has": // t.T("key", ...)
		if len(x.Args) >= 1 {
			if msg, ok := constString(e.info, x.Args[0]); ok {
				e.addRef(x.Args[0].Pos(), e.qualify(sel.X, msg))
			}
		}

		return true
	}

	return false
}

// qualify prefixes key with the receiver's namespace when the receiver is a
// direct i18n.N(ctx, "ns") call with a constant namespace. Translators held
// in variables cannot be resolved statically; their keys are recorded
// unqualified.
func (e *extractor) qualify(recv ast.Expr, key string) string {
	call, ok := recv.(*ast.CallExpr)
	if !ok || len(call.Args) < 2 {
		return key
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "N" {
		return key
	}

	ns, ok := constString(e.info, call.Args[1])
	if !ok || ns == "" {
		return key
	}

	return ns + "." + key
}

// addRef records a reference to a message key, normalising the file path
// relative to the computed project root.
func (e *extractor) addRef(pos token.Pos, key string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	file = filepath.ToSlash(file)

	e.refs[key] = append(e.refs[key], ref{file: file, line: p.Line})
}

// findProjectRoot attempts to find a stable root directory for source references.
// Preference order:
//  1. nearest parent directory that contains go.mod
//  2. the provided working directory
func findProjectRoot(wd string) string {
	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

func fileExists(path string) bool {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return true
	}

	return false
}
