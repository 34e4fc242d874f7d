package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstrap/pkg/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	var (
		meta metaFlags
		all  bool
	)
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules that would run for the given metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			var selected []rules.Rule
			if all {
				selected = p.Registry().Rules()
			} else {
				m, err := a.metadata(cmd, meta)
				if err != nil {
					return err
				}
				selected = p.Dispatcher().Select(m)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, rule := range selected {
				fmt.Fprintf(w, "%s\t%s\t%s\n", rule.Name(), rule.Kind(), rule.Stage())
			}
			return w.Flush()
		},
	}
	meta.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "List every registered rule in execution order")
	return cmd
}
