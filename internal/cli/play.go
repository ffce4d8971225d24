package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/ribs/internal/presentation/graph"
	"github.com/aretw0/ribs/pkg/observability"
	"github.com/aretw0/ribs/pkg/scenario"
)

// PlayOptions contains the configuration of the play command.
type PlayOptions struct {
	Path    string
	Capsule string
	JSON    bool
	Mermaid bool
	Store   StoreOptions
}

// Play runs a scenario file and writes its report to out.
func Play(ctx context.Context, opts PlayOptions, out io.Writer, logger *slog.Logger) error {
	s, err := load(opts.Path, logger)
	if err != nil {
		return err
	}

	runnerOpts := []scenario.Option{
		scenario.WithLogger(logger),
		scenario.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if opts.Capsule != "" {
		manager, closeStore, err := OpenManager(opts.Store, logger)
		if err != nil {
			return err
		}
		defer closeStore()
		runnerOpts = append(runnerOpts, scenario.WithCapsule(manager, opts.Capsule))
	}

	report, runErr := scenario.NewRunner(runnerOpts...).Run(ctx, s)
	if report != nil {
		if err := writeReport(out, report, opts); err != nil {
			return err
		}
	}
	if runErr != nil {
		return handleExecutionError(fmt.Errorf("scenario %q: %w", s.Name, runErr))
	}
	if opts.Capsule != "" && !opts.JSON && !opts.Mermaid {
		printSystemMessage(out, "Capsule '%s' saved.", opts.Capsule)
	}
	return nil
}

func writeReport(w io.Writer, report *scenario.Report, opts PlayOptions) error {
	if opts.Mermaid {
		_, err := fmt.Fprint(w, graph.GenerateMermaid(report))
		return err
	}
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Name != "" {
		fmt.Fprintf(w, "scenario: %s\n", report.Name)
	}
	for _, step := range report.Steps {
		mark := " "
		if !step.Applied {
			mark = "!"
		}
		fmt.Fprintf(w, "%3d %s %-12s back stack: [%s]  views: [%s]",
			step.Index, mark, step.Op,
			strings.Join(step.BackStack, " "), strings.Join(step.Views, " "))
		if step.Ongoing > 0 {
			fmt.Fprintf(w, "  ongoing: %d", step.Ongoing)
		}
		fmt.Fprintln(w)
	}
	if report.Tree != "" {
		fmt.Fprint(w, report.Tree)
	}
	return nil
}
