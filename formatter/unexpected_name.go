package formatter

// UnexpectedNameFormatter renders unexpected-cfg-name issues. The help line
// carries either the similar-name suggestion or the registration hint.
type UnexpectedNameFormatter struct{}

func (f *UnexpectedNameFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{help .Note .Padding}}
`
}
