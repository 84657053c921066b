// Package engine orchestrates a single gate run: collect identifiers,
// fetch the registry snapshot, resolve each identifier, and deliver the
// outcome to every configured sink. Execution is strictly sequential; the
// only operation that can block is the registry fetch.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"skillgate/internal/collect"
	"skillgate/internal/config"
	"skillgate/internal/detect"
	"skillgate/internal/output"
	"skillgate/internal/registry"
	"skillgate/internal/scan"
)

// Exit code contract:
// 0 = clean run, including the "nothing to scan" case
// 1 = one or more packages exceed the configured threshold
// 2 = fatal error (configuration, registry fetch/parse/timeout)
const (
	ExitClean int = iota
	ExitIssues
	ExitFatal
)

func exitCodeForRun(fatal, issues bool) int {
	if fatal {
		return ExitFatal
	}
	if issues {
		return ExitIssues
	}
	return ExitClean
}

// Commenter publishes the markdown report to a code-review conversation.
type Commenter interface {
	PostComment(ctx context.Context, owner, repo string, number int, body string) error
}

type Engine struct {
	Registry *registry.Client

	// Commenter is optional; when set together with cfg.Output.Comment,
	// the markdown report is posted there after the run.
	Commenter Commenter

	// Stdout/Stderr default to the process streams; tests redirect them.
	Stdout io.Writer
	Stderr io.Writer
}

func New(client *registry.Client) *Engine {
	return &Engine{Registry: client}
}

func (e *Engine) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *Engine) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

func (e *Engine) warnf(format string, args ...any) {
	fmt.Fprintf(e.stderr(), "Warning: "+format+"\n", args...)
}

func (e *Engine) fatalf(format string, args ...any) int {
	fmt.Fprintf(e.stderr(), "Error: "+format+"\n", args...)
	return ExitFatal
}

func (e *Engine) setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(e.stdout(), cfg.Output.ConsoleFormat)); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(e.stdout(), emit)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	if err := outMgr.AddSink(output.NewSummarySink(cfg.Output.Summary, e.stderr(), cfg.Threshold())); err != nil {
		_ = outMgr.Close()
		return nil, err
	}

	return outMgr, nil
}

// Run executes the gate and returns the process exit code.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	var detected []string
	if cfg.Inputs.ScanConfig {
		var warnings []string
		detected, warnings = detect.All(cfg.Inputs.Dir)
		for _, w := range warnings {
			e.warnf("%s", w)
		}
	}

	identifiers := collect.Identifiers(collect.SplitPackages(cfg.Inputs.Packages), detected)
	if len(identifiers) == 0 {
		e.warnf("no packages to scan (empty --packages and nothing auto-detected)")
		if err := output.WriteOutputs(scan.Outcome{Results: []scan.Result{}}); err != nil {
			return e.fatalf("write outputs: %v", err)
		}
		return ExitClean
	}

	skills, err := e.Registry.FetchSkills(ctx)
	if err != nil {
		return e.fatalf("%v", err)
	}

	outcome := scan.Resolve(identifiers, skills, cfg.Threshold())

	outMgr, err := e.setupOutputManager(cfg)
	if err != nil {
		return e.fatalf("set up outputs: %v", err)
	}
	for _, res := range outcome.Results {
		if err := outMgr.Write(res); err != nil {
			_ = outMgr.Close()
			return e.fatalf("%v", err)
		}
	}
	summary := output.Summary{
		Threshold: cfg.Threshold(),
		Scanned:   len(outcome.Results),
		HasIssues: outcome.HasIssues,
	}
	if err := outMgr.Write(summary); err != nil {
		_ = outMgr.Close()
		return e.fatalf("%v", err)
	}
	if err := outMgr.Close(); err != nil {
		return e.fatalf("%v", err)
	}

	if err := output.WriteOutputs(outcome); err != nil {
		return e.fatalf("write outputs: %v", err)
	}

	// Comment publication is best-effort: a review-thread hiccup must not
	// mask the gate's real verdict.
	if cfg.Output.Comment != "" && e.Commenter != nil {
		owner, repo, number, err := config.ParseCommentTarget(cfg.Output.Comment)
		if err != nil {
			return e.fatalf("%v", err)
		}
		md := output.Markdown(outcome, cfg.Threshold())
		if err := e.Commenter.PostComment(ctx, owner, repo, number, md); err != nil {
			e.warnf("%v", err)
		}
	}

	return exitCodeForRun(false, outcome.HasIssues)
}
