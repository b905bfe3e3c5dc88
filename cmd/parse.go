package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cfglab/condlint/internal/cfgexpr"
	"github.com/spf13/cobra"
)

// parseCmd: condlint parse 'all(unix, feature = "foo")'
// Debug aid for inspecting how a predicate is parsed.
var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse a cfg predicate and dump its structure",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one cfg predicate")
			os.Exit(1)
		}

		expr, err := cfgexpr.Parse("<arg>", []byte(args[0]))
		if err != nil {
			fmt.Printf("parse error: %v\n", err)
			os.Exit(1)
		}
		dumpExpr(os.Stdout, expr, 0)
	},
}

func dumpExpr(w io.Writer, expr cfgexpr.Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := expr.(type) {
	case *cfgexpr.Atom:
		if e.HasValue {
			fmt.Fprintf(w, "%satom `%s` = %q\n", indent, e.Name, e.Value)
		} else {
			fmt.Fprintf(w, "%satom `%s`\n", indent, e.Name)
		}
	case *cfgexpr.All:
		fmt.Fprintf(w, "%sall (%d)\n", indent, len(e.Exprs))
		for _, child := range e.Exprs {
			dumpExpr(w, child, depth+1)
		}
	case *cfgexpr.Any:
		fmt.Fprintf(w, "%sany (%d)\n", indent, len(e.Exprs))
		for _, child := range e.Exprs {
			dumpExpr(w, child, depth+1)
		}
	case *cfgexpr.Not:
		fmt.Fprintf(w, "%snot\n", indent)
		dumpExpr(w, e.X, depth+1)
	}
}
