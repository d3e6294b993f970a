// Package sanitizer holds the string-safety helpers used as form filter
// targets: tag stripping, HTML escaping, whitespace and control character
// cleanup, Unicode normalization and digit extraction.
//
// Every helper is a plain func(string) string so they chain into a Pipeline
// or a single transform built with Compose:
//
//	clean := sanitizer.Compose(
//		sanitizer.StripTags,
//		sanitizer.RemoveControlChars,
//		sanitizer.NormalizeWhitespace,
//	)
//	out := clean(input)
//
// CleanString is the default filter for single line values and CleanTextarea
// the filter forced on multi line text areas.
package sanitizer
