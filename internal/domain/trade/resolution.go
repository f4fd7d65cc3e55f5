package trade

import "strings"

// ResolutionOutcome is what a resolved dispute does to its transaction.
type ResolutionOutcome string

const (
	OutcomeComplete ResolutionOutcome = "complete"
	OutcomeCancel   ResolutionOutcome = "cancel"
)

// ClassifyResolution infers the outcome from free-text resolution notes:
// "complete"/"proceed" settle the transaction, "cancel"/"refund" reverse
// it, anything ambiguous reverses it. This mirrors the upstream resolver
// behavior; an explicit outcome field on the resolve API would be the
// cleaner contract but would change observable behavior.
func ClassifyResolution(resolution string) ResolutionOutcome {
	text := strings.ToLower(resolution)
	if strings.Contains(text, "cancel") || strings.Contains(text, "refund") {
		return OutcomeCancel
	}
	if strings.Contains(text, "complete") || strings.Contains(text, "proceed") {
		return OutcomeComplete
	}
	return OutcomeCancel
}
