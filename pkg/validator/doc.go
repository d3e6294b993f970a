// Package validator provides string predicates and a small set of rule
// builders for validating values outside of a form definition.
//
// The predicates (IsEmail, IsURL, IsPhone, IsNumeric, IsHexColor,
// IsUsername) back the built-in form rules. Rule values pair a Check
// function with translation-friendly error metadata and are evaluated with
// Apply, which aggregates failures into a ValidationErrors slice that
// satisfies the error interface.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("name", name),
//	    validator.ValidEmail("email", email),
//	    validator.InList("type", typ, known),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // ...
//	    }
//	}
package validator
