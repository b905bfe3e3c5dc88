package types

import "go/token"

// Issue represents a single cfg lint finding.
// Start and End delimit the offending atom (or site) in the linted file.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Expected   []string
	Start      token.Position
	End        token.Position
	Severity   Severity
}

// ConfigRule holds the per-rule settings from the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
