package internal

import (
	"strings"

	tt "github.com/cfglab/condlint/internal/types"
)

const nolintPrefix = "//nolint"

// nolintScope represents the rules suppressed at one comment.
// An empty rule set applies to all lint rules.
type nolintScope struct {
	rules map[string]struct{}
}

// nolintManager maps source lines to nolint scopes. The linted sources are
// not Go, so scoping is line-based rather than AST-based: a nolint comment
// suppresses matching issues on its own line and on the line directly
// below it.
type nolintManager struct {
	lines map[int]nolintScope
}

// parseNolintComments scans src for nolint comments and indexes them by
// line number.
func parseNolintComments(src []byte) *nolintManager {
	manager := &nolintManager{lines: make(map[int]nolintScope)}

	for i, line := range strings.Split(string(src), "\n") {
		idx := strings.Index(line, nolintPrefix)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(nolintPrefix):]
		manager.lines[i+1] = parseNolintRules(rest)
	}
	return manager
}

// parseNolintRules parses the `:rule1,rule2` tail of a nolint comment.
func parseNolintRules(text string) nolintScope {
	scope := nolintScope{rules: make(map[string]struct{})}
	if !strings.HasPrefix(text, ":") {
		return scope
	}
	for _, rule := range strings.Split(text[1:], ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			scope.rules[rule] = struct{}{}
		}
	}
	return scope
}

// isNolint reports whether an issue of the given rule at the given line is
// suppressed.
func (m *nolintManager) isNolint(line int, rule string) bool {
	for _, commentLine := range []int{line, line - 1} {
		scope, ok := m.lines[commentLine]
		if !ok {
			continue
		}
		if len(scope.rules) == 0 {
			return true
		}
		if _, ok := scope.rules[rule]; ok {
			return true
		}
	}
	return false
}

func (m *nolintManager) filter(issues []tt.Issue) []tt.Issue {
	if len(m.lines) == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !m.isNolint(issue.Start.Line, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
