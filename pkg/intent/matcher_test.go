package intent

import (
	"testing"
)

func TestTryAnswer(t *testing.T) {
	matcher, err := NewMatcher(DefaultRules())
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	tests := []struct {
		name      string
		query     string
		wantMatch bool
	}{
		{
			name:      "password reset question",
			query:     "How do I reset my password?",
			wantMatch: true,
		},
		{
			name:      "forgot password variant",
			query:     "I forgot my password, help!",
			wantMatch: true,
		},
		{
			name:      "case insensitive",
			query:     "RESET MY PASSWORD please",
			wantMatch: true,
		},
		{
			name:      "unrelated question falls through to rag",
			query:     "Tell me about riding helmets",
			wantMatch: false,
		},
		{
			name:      "password mentioned without reset intent",
			query:     "Is my password stored securely?",
			wantMatch: false,
		},
		{
			name:      "empty query",
			query:     "",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, ok := matcher.TryAnswer(tt.query)
			if ok != tt.wantMatch {
				t.Errorf("TryAnswer(%q) match = %v, want %v", tt.query, ok, tt.wantMatch)
			}
			if ok && answer == "" {
				t.Errorf("TryAnswer(%q) matched with empty answer", tt.query)
			}
			if !ok && answer != "" {
				t.Errorf("TryAnswer(%q) returned answer without match", tt.query)
			}
		})
	}
}

func TestRuleOrder(t *testing.T) {
	matcher, err := NewMatcher([]Rule{
		{Pattern: `password`, Answer: "first"},
		{Pattern: `reset.*password`, Answer: "second"},
	})
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	answer, ok := matcher.TryAnswer("reset password")
	if !ok || answer != "first" {
		t.Errorf("expected first matching rule to win, got %q (match=%v)", answer, ok)
	}
}

func TestMalformedRuleIsStartupError(t *testing.T) {
	_, err := NewMatcher([]Rule{{Pattern: `[unclosed`, Answer: "x"}})
	if err == nil {
		t.Fatal("expected error for malformed pattern, got nil")
	}
}
