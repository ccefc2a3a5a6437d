package categorize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/types"
)

func testRuleSet() *RuleSet {
	return NewRuleSet(&config.Config{CategoryRules: []config.CategoryRule{
		{Category: "fuel", Patterns: []string{"shell", "bp garage"}},
		{Category: "veg boxes", Patterns: []string{"box subscription"}, Type: "credit"},
		{Category: "supplies", Patterns: []string{"farm supplies"}},
	}})
}

func TestRuleSetCategorize_SubstringMatch(t *testing.T) {
	rs := testRuleSet()

	got := rs.Categorize(Fields{Description: "SHELL PETROL 0488", Type: types.TransactionTypeDebit})
	require.NotNil(t, got)
	require.Equal(t, "fuel", *got)
}

func TestRuleSetCategorize_CaseInsensitive(t *testing.T) {
	rs := testRuleSet()

	got := rs.Categorize(Fields{Description: "Farm Supplies Ltd", Type: types.TransactionTypeDebit})
	require.NotNil(t, got)
	require.Equal(t, "supplies", *got)
}

func TestRuleSetCategorize_FirstMatchWins(t *testing.T) {
	rs := testRuleSet()

	// Matches both "shell" and "farm supplies"; rule order decides.
	got := rs.Categorize(Fields{Description: "SHELL AT FARM SUPPLIES", Type: types.TransactionTypeDebit})
	require.NotNil(t, got)
	require.Equal(t, "fuel", *got)
}

func TestRuleSetCategorize_TypeRestriction(t *testing.T) {
	rs := testRuleSet()

	got := rs.Categorize(Fields{Description: "BOX SUBSCRIPTION W10", Type: types.TransactionTypeCredit})
	require.NotNil(t, got)
	require.Equal(t, "veg boxes", *got)

	// A refund going out matches the pattern but not the type.
	require.Nil(t, rs.Categorize(Fields{Description: "BOX SUBSCRIPTION W10", Type: types.TransactionTypeDebit}))
}

func TestRuleSetCategorize_ReferenceField(t *testing.T) {
	rs := testRuleSet()

	got := rs.Categorize(Fields{Description: "CARD 1234", Reference: "BP GARAGE", Type: types.TransactionTypeDebit})
	require.NotNil(t, got)
	require.Equal(t, "fuel", *got)
}

func TestRuleSetCategorize_NoMatch(t *testing.T) {
	rs := testRuleSet()
	require.Nil(t, rs.Categorize(Fields{Description: "UNKNOWN MERCHANT", Type: types.TransactionTypeDebit}))
}

func TestRuleSetCategorize_Deterministic(t *testing.T) {
	rs := testRuleSet()
	f := Fields{Description: "SHELL PETROL 0488", Type: types.TransactionTypeDebit}

	first := rs.Categorize(f)
	for i := 0; i < 10; i++ {
		got := rs.Categorize(f)
		require.NotNil(t, got)
		require.Equal(t, *first, *got)
	}
}

func TestNewRuleSet_SkipsEmptyRules(t *testing.T) {
	rs := NewRuleSet(&config.Config{CategoryRules: []config.CategoryRule{
		{Category: "", Patterns: []string{"x"}},
		{Category: "empty", Patterns: nil},
		{Category: "blank patterns", Patterns: []string{"  ", ""}},
	}})
	require.Empty(t, rs.rules)
}
