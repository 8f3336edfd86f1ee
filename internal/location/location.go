// Package location implements spec §2's location refraction: a
// specialized structured-editing view over a path's slash-separated
// components, used by a division's header to navigate to and save a
// Resource.
//
// Grounded on original_source/syntax/location.py's format_path/
// structure_path/compose functions for the path-classification and
// component-composition rules, and on internal/project/filestore's
// Document/FileStore shape (internal/project/filestore/document.go,
// store.go) for the Go load/save plumbing a structured path editor
// drives once it has resolved a path.
package location

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/keystorm/keystorm/internal/fields"
	"github.com/keystorm/keystorm/internal/reform"
)

// ClassifySegment reports the field class a path component should
// render with, given the absolute path it resolves to and whether it
// is the final (subject) component rather than a context component.
// Ported from format_path's final/intermediate classification split.
func ClassifySegment(full string, final bool) fields.Class {
	info, lerr := os.Lstat(full)
	if lerr != nil {
		return fields.ClassFileNotFound
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fields.ClassPathLink
	}

	info, err := os.Stat(full)
	if err != nil {
		return fields.ClassFileNotFound
	}

	if info.IsDir() {
		return fields.ClassPathDirectory
	}

	if !final {
		return fields.ClassDefault
	}

	name := filepath.Base(full)
	switch {
	case info.Mode()&0111 != 0:
		return fields.ClassExecutable
	case strings.HasPrefix(name, "."):
		return fields.ClassDotFile
	default:
		return fields.ClassDefault
	}
}

// StructurePath splits line (a single `/`-joined path, absolute or
// relative to root) into reform.Fields: an empty indentation field, a
// field per path component interleaved with path-separator fields,
// and a trailing-whitespace field, matching structure_path's layout
// exactly (spec §6's field-class taxonomy names every class used
// here).
func StructurePath(root, line string) []reform.Field {
	out := []reform.Field{{Class: fields.ClassIndentation, Text: ""}}
	if line == "" {
		out = append(out, reform.Field{Class: fields.ClassTrailingWhitespace, Text: ""})
		return out
	}

	absolute := strings.HasPrefix(line, "/")
	parts := strings.Split(line, "/")
	if absolute {
		parts = parts[1:]
	}

	base := root
	if absolute {
		base = "/"
	}
	current := base

	for i, part := range parts {
		final := i == len(parts)-1
		if part == "" {
			if !final {
				out = append(out, reform.Field{Class: fields.ClassDefault, Text: ""})
				out = append(out, reform.Field{Class: fields.ClassPathSeparator, Text: "/"})
			}
			continue
		}
		if part == "." || part == ".." {
			current = filepath.Join(current, part)
			out = append(out, reform.Field{Class: fields.ClassDefault, Text: part})
		} else {
			current = filepath.Join(current, part)
			out = append(out, reform.Field{Class: ClassifySegment(current, final), Text: part})
		}
		if !final {
			out = append(out, reform.Field{Class: fields.ClassPathSeparator, Text: "/"})
		}
	}

	out = append(out, reform.Field{Class: fields.ClassTrailingWhitespace, Text: ""})
	return out
}

// Tokenizer returns a reform.Tokenizer that renders a single content
// line as a structured path relative to root, for use by a division's
// location-header Refraction.
func Tokenizer(root string) reform.Tokenizer {
	return func(content string) ([]reform.Field, error) {
		return StructurePath(root, content), nil
	}
}

// Compose joins a sequence of path-component lines into a single
// absolute path, treating every line but the last as context
// directories and the last as the subject path, per compose()'s
// contract: an absolute final line ignores the context lines
// entirely, and an empty result (all-whitespace input) falls back to
// def.
func Compose(lines []string, def string) string {
	var kept []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return def
	}

	subject := kept[len(kept)-1]
	if strings.HasPrefix(subject, "/") {
		return filepath.Clean(subject)
	}

	ctx := kept[:len(kept)-1]
	trimmed := make([]string, len(ctx))
	for i, c := range ctx {
		trimmed[i] = strings.Trim(c, "/")
	}
	base := "/" + strings.Join(trimmed, "/")
	base = filepath.Clean(base)
	if subject == "" {
		return base
	}
	return filepath.Join(base, subject)
}

// Determine reports the (context, relative-or-absolute) pair used to
// seed a location refraction's two path lines for path, relative to
// context when path shares context as an ancestor, or absolute
// otherwise. Ported from determine().
func Determine(context, path string) (string, string) {
	context = filepath.Clean(context)
	path = filepath.Clean(path)
	rel, err := filepath.Rel(context, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return context, path
	}
	return context, rel
}
