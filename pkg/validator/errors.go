package validator

import "errors"

var (
	// ErrUnknownRule is returned when a tag or rule set names a rule that is
	// not registered.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidRuleParams is returned when a rule receives the wrong number
	// of parameters.
	ErrInvalidRuleParams = errors.New("invalid rule parameters")

	// ErrInvalidTarget is returned when Validate receives something other
	// than a struct or a non-nil pointer to one.
	ErrInvalidTarget = errors.New("validation target must be a struct")

	// ErrFailedToParseRuleSet is returned when a rule set document cannot be decoded.
	ErrFailedToParseRuleSet = errors.New("failed to parse rule set")

	// ErrInvalidRuleSet is returned when a decoded rule set is incomplete.
	ErrInvalidRuleSet = errors.New("invalid rule set")
)
