package cli

import (
	"io"
	"log/slog"

	"github.com/aretw0/ribs/internal/validator"
	"github.com/aretw0/ribs/pkg/scenario"
)

// Validate checks a scenario file and prints its warnings.
func Validate(path string, out io.Writer) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	res := validator.ValidateScenario(s)
	for _, w := range res.Warnings {
		printSystemMessage(out, "warning: %s", w)
	}
	if err := res.Err(); err != nil {
		return err
	}
	printSystemMessage(out, "Scenario '%s' is valid.", s.Name)
	return nil
}

// load reads a scenario and refuses invalid ones. Warnings are logged.
func load(path string, logger *slog.Logger) (*scenario.Scenario, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	res := validator.ValidateScenario(s)
	for _, w := range res.Warnings {
		logger.Warn("Scenario warning", "scenario", path, "warning", w)
	}
	return s, res.Err()
}
