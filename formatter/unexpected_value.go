package formatter

// UnexpectedValueFormatter renders unexpected-cfg-value issues. The note
// line enumerates the declared value set verbatim, in declared order.
type UnexpectedValueFormatter struct{}

func (f *UnexpectedValueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{note .Note .Padding}}
`
}
