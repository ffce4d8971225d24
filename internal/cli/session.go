package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/ribs/pkg/observability"
	"github.com/aretw0/ribs/pkg/scenario"
	"github.com/muesli/termenv"
)

// SessionOptions contains the configuration of the run command.
type SessionOptions struct {
	// Path is a scenario file defining the router. Its steps are ignored.
	Path    string
	Capsule string
	JSON    bool
	Store   StoreOptions

	// Prompt prints "> " before reading each text command.
	Prompt bool
}

// Short names accepted in text mode.
var aliases = map[string]scenario.Op{
	"back":  scenario.OpPop,
	"wake":  scenario.OpWakeUp,
	"state": scenario.OpExpect,
}

// RunSession drives a router from commands read on in, one per line, until EOF or
// "quit". Text mode reads "push Details id=42"; JSON mode reads step objects such as
// {"op":"push","configuration":{"name":"Details"}} and answers with one JSON line each.
func RunSession(ctx context.Context, opts SessionOptions, in io.Reader, out io.Writer, logger *slog.Logger) error {
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

	player, err := scenario.NewRunner(runnerOpts...).Start(ctx, s)
	if err != nil {
		return err
	}
	if !opts.JSON {
		printSystemMessage(out, "Session '%s' ready. Type 'quit' to leave.", s.Name)
	}

	enc := json.NewEncoder(out)
	term := termenv.NewOutput(out)
	prompt := func() {
		if opts.Prompt && !opts.JSON {
			fmt.Fprint(out, "> ")
		}
	}

	lines := bufio.NewScanner(in)
	for prompt(); lines.Scan(); prompt() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		var result scenario.StepResult
		step, err := parseCommand(line, opts.JSON)
		if err == nil {
			result, err = player.Play(step)
		}

		switch {
		case opts.JSON && err != nil:
			_ = enc.Encode(map[string]string{"error": err.Error()})
		case opts.JSON:
			_ = enc.Encode(result)
		case err != nil:
			fmt.Fprintln(out, term.String("error: "+err.Error()).Foreground(term.Color("#f87171")).String())
		default:
			mark := ""
			if !result.Applied {
				mark = term.String(" (not applied)").Foreground(term.Color("#fbbf24")).String()
			}
			fmt.Fprintf(out, "back stack: [%s]  views: [%s]%s\n",
				strings.Join(result.BackStack, " "), strings.Join(result.Views, " "), mark)
		}
	}
	if err := lines.Err(); err != nil {
		logger.Warn("Session input failed", "err", err)
	}

	tree, err := player.Close(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	if !opts.JSON {
		fmt.Fprint(out, tree)
		if opts.Capsule != "" {
			printSystemMessage(out, "Capsule '%s' saved.", opts.Capsule)
		}
	}
	return nil
}

func parseCommand(line string, asJSON bool) (scenario.Step, error) {
	line, err := sanitizeCommand(line)
	if err != nil {
		return scenario.Step{}, err
	}
	if asJSON {
		var raw map[string]any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return scenario.Step{}, fmt.Errorf("invalid JSON command: %w", err)
		}
		return scenario.DecodeStep(raw)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return scenario.Step{}, errors.New("empty command")
	}
	op := scenario.Op(fields[0])
	if alias, ok := aliases[fields[0]]; ok {
		op = alias
	}
	raw := map[string]any{"op": string(op)}
	args := fields[1:]

	switch {
	case op == scenario.OpFrames && len(args) > 0:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return scenario.Step{}, fmt.Errorf("frames: %q is not a count", args[0])
		}
		raw["count"] = n
	case len(args) > 0:
		params := map[string]any{}
		for _, kv := range args[1:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return scenario.Step{}, fmt.Errorf("param %q: want key=value", kv)
			}
			params[k] = v
		}
		raw["configuration"] = map[string]any{"name": args[0], "params": params}
	}
	return scenario.DecodeStep(raw)
}
