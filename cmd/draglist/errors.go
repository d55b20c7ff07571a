package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/draglist/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `Lists every error code draglist can report.

With a code argument, prints the category, message and detail for it.`,
		Example: `  draglist errors
  draglist errors E103`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					tmpl, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-9s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			tmpl, ok := errors.GetTemplate(code)
			if !ok {
				return errors.New(errors.CodeCLIArgs).
					WithDetail(fmt.Sprintf("%q is not a draglist error code.", args[0])).
					WithSuggestion("Run 'draglist errors' to list all codes")
			}
			fmt.Fprintf(out, "%s (%s): %s\n", code, tmpl.Category, tmpl.Message)
			if tmpl.Detail != "" {
				fmt.Fprintf(out, "\n  %s\n", tmpl.Detail)
			}
			return nil
		},
	}
}
