// Package validator provides composable validation rules for request input.
//
// Rules are plain values evaluated by Apply, which collects every failure
// into ValidationErrors:
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", email),
//	    validator.Required("password", password),
//	)
//	if errs, ok := validator.AsValidationErrors(err); ok {
//	    fields := errs.Fields()
//	    // ...
//	}
package validator
