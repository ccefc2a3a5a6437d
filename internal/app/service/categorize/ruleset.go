package categorize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/types"
)

// Fields is the transaction projection the rule set sees. Categorization is
// a pure function of these fields: no side effects, deterministic for
// identical input.
type Fields struct {
	Description string
	Reference   string
	Amount      decimal.Decimal
	Type        types.TransactionType
}

type rule struct {
	category string
	patterns []string
	txnType  types.TransactionType
}

// RuleSet matches transactions against ordered substring rules. First match
// wins; no match returns nil and leaves the category unset.
type RuleSet struct {
	rules []rule
}

// NewRuleSet compiles the configured rules. Patterns are lowercased once at
// build time.
func NewRuleSet(cfg *config.Config) *RuleSet {
	rs := &RuleSet{}
	for _, rc := range cfg.CategoryRules {
		if rc.Category == "" || len(rc.Patterns) == 0 {
			continue
		}
		r := rule{category: rc.Category, txnType: types.TransactionType(rc.Type)}
		for _, p := range rc.Patterns {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" {
				r.patterns = append(r.patterns, p)
			}
		}
		if len(r.patterns) > 0 {
			rs.rules = append(rs.rules, r)
		}
	}
	return rs
}

// Categorize returns the best-match category label, or nil when no rule
// matches.
func (rs *RuleSet) Categorize(f Fields) *string {
	desc := strings.ToLower(f.Description)
	ref := strings.ToLower(f.Reference)

	for _, r := range rs.rules {
		if r.txnType != "" && r.txnType != f.Type {
			continue
		}
		for _, p := range r.patterns {
			if strings.Contains(desc, p) || (ref != "" && strings.Contains(ref, p)) {
				category := r.category
				return &category
			}
		}
	}
	return nil
}
