package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formstrap/internal/prompt"
	"github.com/goliatone/go-formstrap/pkg/config"
	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/pipeline"
	"github.com/goliatone/go-formstrap/pkg/sanitize"
)

// app carries the dependencies shared by every command.
type app struct {
	logger      *zap.Logger
	prompter    prompt.Prompter
	interactive func() bool

	debug      bool
	configPath string
	sanitize   bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formstrap",
		Short: "Annotate form renderer markup with Bootstrap classes",
		Long: `formstrap rewrites Gravity Forms markup fragments so they pick up
Bootstrap 5 styling. Only class attributes change; structure, other
attributes and text are preserved.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if a.debug {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("formstrap: init logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Log every rule application")
	flags.StringVar(&a.configPath, "config", "", "YAML rule tables layered over the defaults")
	flags.BoolVar(&a.sanitize, "sanitize", false, "Strip scripts and event handlers before annotating")

	root.AddCommand(newAnnotateCmd(a))
	root.AddCommand(newRulesCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newLintCmd(a))
	return root
}

// pipeline builds a pipeline from the persistent flags.
func (a *app) pipeline(extra ...pipeline.Option) (*pipeline.Pipeline, error) {
	options := []pipeline.Option{pipeline.WithLogger(a.logger)}
	if a.configPath != "" {
		tables, err := config.LoadFile(a.configPath)
		if err != nil {
			return nil, err
		}
		options = append(options, pipeline.WithTables(tables))
	}
	if a.sanitize {
		options = append(options, pipeline.WithSanitizer(sanitize.Policy()))
	}
	return pipeline.New(append(options, extra...)...), nil
}

// metaFlags binds the metadata flags shared by annotate and rules.
type metaFlags struct {
	fieldType      string
	formID         string
	stage          string
	containerClass string
	choices        []string
}

func (m *metaFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&m.fieldType, "type", "t", "", "Field type ("+strings.Join(typeNames(), ", ")+")")
	flags.StringVar(&m.formID, "form", "", "Form id")
	flags.StringVarP(&m.stage, "stage", "s", string(field.StageContent), "Stage: content, container, choices, form or submit")
	flags.StringVar(&m.containerClass, "container-class", "", "Class list of the field container (container stage)")
	flags.StringArrayVar(&m.choices, "choice", nil, "Choice label (choices stage, repeatable)")
}

// metadata turns the flags into field metadata, prompting for the field type
// when a field stage is requested without one on an interactive terminal.
func (a *app) metadata(cmd *cobra.Command, m metaFlags) (field.Metadata, error) {
	meta := field.Metadata{
		Type:           field.ParseType(m.fieldType),
		FormID:         strings.TrimSpace(m.formID),
		Stage:          field.ParseStage(m.stage),
		ContainerClass: m.containerClass,
	}
	if !validStage(meta.Stage) {
		return field.Metadata{}, fmt.Errorf("formstrap: unknown stage %q", m.stage)
	}
	for _, text := range m.choices {
		meta.Choices = append(meta.Choices, field.Choice{Text: text})
	}
	if meta.Type != "" || !fieldStage(meta.Stage) {
		return meta, nil
	}
	if a.prompter == nil || a.interactive == nil || !a.interactive() {
		return meta, nil
	}
	options := typeNames()
	idx, err := a.prompter.Select(cmd.Context(), prompt.SelectConfig{
		Message:  "Field type",
		Options:  options,
		PageSize: 10,
	})
	if err != nil {
		return field.Metadata{}, fmt.Errorf("formstrap: prompt field type: %w", err)
	}
	if idx >= 0 && idx < len(options) {
		meta.Type = field.Type(options[idx])
	}
	return meta, nil
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("formstrap: read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("formstrap: read %s: %w", args[0], err)
	}
	return string(data), nil
}

func typeNames() []string {
	known := field.KnownTypes()
	names := make([]string, len(known))
	for idx, t := range known {
		names[idx] = string(t)
	}
	return names
}

func validStage(stage field.Stage) bool {
	for _, s := range field.Stages() {
		if s == stage {
			return true
		}
	}
	return false
}

func fieldStage(stage field.Stage) bool {
	switch stage {
	case field.StageContent, field.StageContainer, field.StageChoices:
		return true
	}
	return false
}
