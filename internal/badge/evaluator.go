package badge

import "context"

// Evaluator answers "would the rule currently be satisfied" and "how far
// along is the user". It is side-effect free and safe for concurrent use.
// Ownership is deliberately NOT checked here: a caller that cares whether
// the badge is already recorded must gate on that first.
type Evaluator struct {
	rules *Rules
}

func NewEvaluator(rules *Rules) *Evaluator { return &Evaluator{rules: rules} }

func (e *Evaluator) IsAcquirable(ctx context.Context, userID string, badgeID int64) (bool, error) {
	rule, err := e.rules.For(badgeID)
	if err != nil {
		return false, err
	}
	return rule.IsAcquirable(ctx, userID)
}

// Progress returns the sub-condition tuples for a locked badge. Rules
// without sub-conditions yield an empty list, never an error.
func (e *Evaluator) Progress(ctx context.Context, userID string, badgeID int64) ([]Progress, error) {
	rule, err := e.rules.For(badgeID)
	if err != nil {
		return nil, err
	}
	return rule.Progress(ctx, userID)
}
