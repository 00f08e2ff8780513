// Package classification assigns budget categories to imported transactions
// by matching their descriptions against prioritized rules.
package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Veraticus/finpilot/internal/vocab"
)

// Rule maps descriptions matching Pattern to a display category.
type Rule struct {
	Name     string `mapstructure:"name"`
	Category string `mapstructure:"category"`
	Pattern  string `mapstructure:"pattern"`
	Priority int    `mapstructure:"priority"` // higher is checked first
}

type compiledRule struct {
	re         *regexp.Regexp
	categoryID string
	Rule
}

// Match is the rule that claimed a description.
type Match struct {
	Rule       string
	CategoryID string
}

// Classifier matches descriptions against rules in priority order.
type Classifier struct {
	rules []compiledRule
	mu    sync.RWMutex
}

// New compiles rules into a classifier.
func New(rules []Rule) (*Classifier, error) {
	c := &Classifier{}
	if err := c.SetRules(rules); err != nil {
		return nil, err
	}
	return c, nil
}

// SetRules replaces the rule set. On error the old rules stay in place.
func (c *Classifier) SetRules(rules []Rule) error {
	compiled, err := compile(rules)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.rules = compiled
	c.mu.Unlock()
	return nil
}

func compile(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		id, err := vocab.CategoryIDForName(r.Category)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}

		expr := r.Pattern
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}

		compiled = append(compiled, compiledRule{Rule: r, re: re, categoryID: id})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return compiled, nil
}

// Match returns the highest-priority rule matching description.
func (c *Classifier) Match(description string) (Match, bool) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Match{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.rules {
		if r.re.MatchString(description) {
			return Match{Rule: r.Name, CategoryID: r.categoryID}, true
		}
	}
	return Match{}, false
}

// Category implements importer.Categorizer.
func (c *Classifier) Category(description string) (string, bool) {
	m, ok := c.Match(description)
	return m.CategoryID, ok
}

// Len returns the number of loaded rules.
func (c *Classifier) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}
