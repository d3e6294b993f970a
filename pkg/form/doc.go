// Package form materializes declarative form definitions into fields, binds
// request data to them, and filters and validates the bound values.
//
// A Form owns a definition tree (see package definition). Fields are looked
// up through an Index that resolves dot separated group paths with exact
// ancestor chain matching: a field named "x" in group "a" is never confused
// with a field "x" in group "a.b".
//
//	f := form.New("user.profile", form.WithControl("csForm"))
//	if err := f.LoadXML(src, true); err != nil {
//		return err
//	}
//	f.Bind(data)
//	ok, err := f.Validate(data, "")
//	if err != nil {
//		return err // configuration problem
//	}
//	if !ok {
//		for _, e := range f.Errors() {
//			log.Println(e.Kind, e.FieldKey(), e.Message)
//		}
//	}
//
// # Field types
//
// Each type tag maps to a Strategy through a FieldRegistry. Strategies belong
// to one of four families (input, select, textarea, container) or are custom
// implementations embedding Base. Attributes are resolved into a snapshot:
// type defaults, then declared attributes, then the values a strategy forces.
// The definition tree is never modified while resolving.
//
// # Filters and rules
//
// FilterEngine implements the built-in filters (raw, int_array, safehtml,
// server_utc, url, tel, unset) and named callables such as string and
// textarea. Rules are registered by name in a RuleRegistry; RegexRule is the
// default implementation. Unknown rule names and misconfigured rules are
// returned as errors; rule failures become Error records.
//
// # Messages
//
// Labels, descriptions and error messages resolve through a Translator using
// upper-cased keys such as FIELD_{NS}_{NAME}_LABEL, where NS is the form
// context (the part of the form name after the first dot).
//
// A Form is not safe for concurrent use.
package form
