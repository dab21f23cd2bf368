// Package validator provides declarative validation rules built from a Check
// function and translation-friendly error metadata.
//
// Rules are plain values evaluated with Apply, which collects the failures
// into ValidationErrors:
//
//	err := validator.Apply(
//	    validator.Empty("pending", order.Pending),
//	    validator.NotInRange("quantity", order.Quantity, 100, 999,
//	        validator.WithDisplayName("Quantity")),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // inspect verrs.Get("quantity")
//	}
//
// # Rules
//
// Empty passes when its value has no elements. NotInRange passes when its
// value lies outside an inclusive range, after converting both bounds to the
// value's type with reflection.Parse. Both accept WithDisplayName and
// WithMessage to control the reported message.
//
// # Declaring rules
//
// Validate reads rules from struct tags (`validate:"notinrange=1,10"`), and
// RuleSet reads them from YAML keyed by property path. Both resolve rule names
// through a Registry; DefaultRegistry knows "empty" and "notinrange" and
// custom rules can be registered alongside them.
//
// Failed rules are reported as ValidationErrors. Configuration mistakes such
// as unknown rule names are reported as ordinary errors wrapping
// ErrUnknownRule or ErrInvalidRuleParams.
package validator
