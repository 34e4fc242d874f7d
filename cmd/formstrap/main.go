// Command formstrap annotates form markup with Bootstrap classes.
//
//	formstrap annotate --type email field.html
//	formstrap rules --type name
//	formstrap batch --workers 8 jobs.yaml
package main

import (
	"os"

	"github.com/goliatone/go-formstrap/internal/prompt"
)

func main() {
	a := &app{
		prompter:    prompt.NewSurvey(),
		interactive: prompt.Interactive,
	}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
