package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstrap/pkg/config"
)

type violation struct {
	file  string
	issue config.Issue
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <tables.yaml>...",
		Short: "Check rule table files for entries that can never apply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var violations []violation
			for _, path := range args {
				tables, err := config.LoadFile(path)
				if err != nil {
					violations = append(violations, violation{file: path, issue: config.Issue{Location: "load", Message: err.Error()}})
					continue
				}
				for _, issue := range config.Lint(tables) {
					violations = append(violations, violation{file: path, issue: issue})
				}
			}
			if len(violations) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) ok\n", len(args))
				return err
			}

			sort.SliceStable(violations, func(i, j int) bool {
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.file, v.issue)
			}
			return errors.New("formstrap: lint found problems")
		},
	}
}
