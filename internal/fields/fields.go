// Package fields implements the field-class taxonomy of spec §6: the
// stable identifiers a syntax type's tokenizer attaches to phrase
// words, and the theme lookup that resolves them to a display style.
// The taxonomy and the fallback-to-"default" rule are ported from
// internal/renderer/highlight.Theme's token/scope resolution; style
// composition across overlapping layers (selection over syntax, a
// diagnostic over both, ...) reuses internal/renderer/style's layered
// resolver, generalized from its fixed LayerBase..LayerCursor stack to
// field-class keys.
package fields

// Class is a stable field-class identifier, as produced by a syntax
// type's tokenizer and consumed by the renderer's theme lookup. Names
// match spec §6 exactly; unrecognized names fall back to ClassDefault.
type Class string

const (
	ClassDefault Class = "default"

	// inclusion-* (code)
	ClassIdentifier     Class = "inclusion-identifier"
	ClassKeyword        Class = "inclusion-keyword"
	ClassCoreword       Class = "inclusion-coreword"
	ClassMetaword       Class = "inclusion-metaword"
	ClassOperation      Class = "inclusion-operation"
	ClassRouter         Class = "inclusion-router"
	ClassTerminator     Class = "inclusion-terminator"
	ClassStartEnclosure Class = "inclusion-start-enclosure"
	ClassStopEnclosure  Class = "inclusion-stop-enclosure"
	ClassSpace          Class = "inclusion-space"

	// exclusion-* (comments)
	ClassComment Class = "exclusion-comment"

	// literal-* (string literals)
	ClassLiteralString Class = "literal-string"

	// whitespace classes
	ClassIndentation        Class = "indentation"
	ClassIndentationOnly    Class = "indentation-only"
	ClassTrailingWhitespace Class = "trailing-whitespace"
	ClassLineTermination    Class = "line-termination"

	// ephemera
	ClassFieldAnnotation Class = "field-annotation"
	ClassErrorCondition  Class = "error-condition"
	ClassWarning         Class = "warning"

	// filesystem classes (location views)
	ClassPathSeparator Class = "path-separator"
	ClassPathDirectory Class = "path-directory"
	ClassPathLink      Class = "path-link"
	ClassExecutable    Class = "executable"
	ClassDotFile       Class = "dot-file"
	ClassFileNotFound  Class = "file-not-found"

	// glyph roles used by Redirects (control pictures, obstructions)
	ClassRepresentation Class = "representation"
	ClassObstruction    Class = "obstruction"
)

// annotationPrefixed reports whether name is a field-annotation-*
// variant; these carry caller-specific suffixes (the annotation kind)
// and all resolve through the base ClassFieldAnnotation entry unless a
// theme registers the exact suffixed name.
func annotationPrefixed(name Class) bool {
	const prefix = "field-annotation-"
	return len(name) > len(prefix) && string(name[:len(prefix)]) == prefix
}
