package intent

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Rule maps a query pattern to a canned answer. Patterns are case-insensitive
// regular expressions evaluated in order; the first match wins.
type Rule struct {
	Pattern string `json:"pattern"`
	Answer  string `json:"answer"`
}

type compiledRule struct {
	pattern *regexp.Regexp
	answer  string
}

// Matcher is a deterministic shortcut answerer for unambiguous, high-frequency
// questions. It is pure: no I/O, no state, no failure modes past construction.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles the rule set. A malformed pattern is a startup-time
// configuration error.
func NewMatcher(rules []Rule) (*Matcher, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile intent rule %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{pattern: re, answer: rule.Answer})
	}
	return &Matcher{rules: compiled}, nil
}

// TryAnswer returns the canned answer for the first matching rule, or false
// when no rule matches and the query must go to the retrieval engine.
func (m *Matcher) TryAnswer(query string) (string, bool) {
	for _, rule := range m.rules {
		if rule.pattern.MatchString(query) {
			return rule.answer, true
		}
	}
	return "", false
}

// DefaultRules returns the built-in rule set mapped to official FAQ snippets.
func DefaultRules() []Rule {
	return []Rule{
		{
			Pattern: `\b(reset|forgot)\s+(my\s+)?password\b`,
			Answer:  "To reset your password, go to Settings → Security → Reset Password.",
		},
	}
}

// LoadRules reads additional rules from a JSON file ([{"pattern","answer"},...]).
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intent rules %s: %w", path, err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse intent rules %s: %w", path, err)
	}
	return rules, nil
}
