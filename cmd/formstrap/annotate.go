package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAnnotateCmd(a *app) *cobra.Command {
	var (
		meta   metaFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "annotate [file]",
		Short: "Annotate a single fragment",
		Long: `Reads a markup fragment from file (or stdin) and prints it with the
classes every matching rule adds. Unknown field types pass through untouched.

Example:
  formstrap annotate --type email --form 1 field.html
  echo '<input type="submit">' | formstrap annotate --stage submit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.metadata(cmd, meta)
			if err != nil {
				return err
			}
			fragment, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			out := p.Apply(fragment, m)
			a.logger.Debug("fragment annotated",
				zap.String("field_type", string(m.Type)),
				zap.String("stage", string(m.EffectiveStage())),
				zap.Bool("changed", out != fragment),
			)
			if output != "" {
				if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
					return fmt.Errorf("formstrap: write %s: %w", output, err)
				}
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	meta.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to file instead of stdout")
	return cmd
}
