package badge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/heart-badge/internal/model"
)

func TestRules_UnknownBadgeIsLoud(t *testing.T) {
	r := rulesWith(fakeCounters{})

	rule, err := r.For(999)
	require.ErrorIs(t, err, ErrNoRuleFound)
	require.Nil(t, rule)
}

func TestRules_EveryNonDefaultBadgeHasARule(t *testing.T) {
	r := rulesWith(fakeCounters{})

	for _, b := range model.Catalog() {
		if b.IsDefault() {
			continue
		}
		rule, err := r.For(b.ID)
		require.NoError(t, err, "badge %d (%s)", b.ID, b.Name)
		require.NotNil(t, rule)
	}
}

func TestRules_RegisterReplaces(t *testing.T) {
	r := rulesWith(fakeCounters{})
	r.Register(model.BadgeMincho, neverAcquirable{})

	rule, err := r.For(model.BadgeMincho)
	require.NoError(t, err)
	require.IsType(t, neverAcquirable{}, rule)
}
