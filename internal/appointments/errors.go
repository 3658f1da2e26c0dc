package appointments

import (
	"errors"
	"strings"
)

// ErrInvalidDate is returned when a date parameter cannot be parsed.
var ErrInvalidDate = errors.New("Invalid date")

// Rule identifies which booking rule a validation error came from.
type Rule string

const (
	RuleUnrecognizedType   Rule = "unrecognized_type"
	RuleMissingField       Rule = "missing_field"
	RuleConflict           Rule = "conflict"
	RuleBeforeOpening      Rule = "before_opening"
	RuleExtendsPastClosing Rule = "extends_past_closing"
	RuleTooSoon            Rule = "too_soon"
	RuleNotOnHalfHour      Rule = "not_on_half_hour"
)

// ValidationError reports a single violated booking rule.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrors collects every rule violated by a candidate appointment,
// in pipeline order. It implements error so repositories can return it from
// Create without a second channel.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	return "appointments: invalid: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the user-facing message for each violated rule.
func (e ValidationErrors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, ve := range e {
		out = append(out, ve.Message)
	}
	return out
}
