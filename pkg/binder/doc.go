// Package binder extracts form data from HTTP requests.
//
// Field controls are named control[group][...][field], with a trailing []
// for multi-value fields. ParseForm reverses that naming into the nested
// map accepted by form.Form.Bind:
//
//	data, err := binder.BindForm(r, "csForm")
//	if err != nil {
//	    // ErrMissingContentType, ErrUnsupportedMediaType, ErrFailedToParseForm
//	    // or ErrConflictingName
//	}
//	f.Bind(data)
//
// Malformed names such as csForm[a are skipped and reported to the logger
// given with WithLogger; WithStrictNames turns them into ErrMalformedName.
//
// BindJSON accepts the same data as a JSON object, optionally wrapped in a
// single key named after the control.
package binder
