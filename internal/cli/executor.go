package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"solgate/internal/page"
	"solgate/internal/reveal"
	"solgate/internal/term"
)

// SolutionRevealer is the minimal engine interface the CLI wires into.
//
// This allows the CLI to prove exit-code mapping in tests without depending
// on a real terminal or page.
type SolutionRevealer interface {
	Reveal(exerciseID string) (reveal.Outcome, error)
}

type CLIResult struct {
	ExitCode int
	Outcome  reveal.Outcome
}

// registryHolder is the only state shared with the watcher goroutine in
// interactive mode. Reveals read a consistent snapshot.
type registryHolder struct {
	mu  sync.RWMutex
	reg *reveal.Registry
}

func (h *registryHolder) Current() *reveal.Registry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reg
}

func (h *registryHolder) Replace(reg *reveal.Registry) {
	h.mu.Lock()
	h.reg = reg
	h.mu.Unlock()
}

// Execute runs a canonical invocation against the process terminal.
func Execute(ctx context.Context, inv CLIInvocation) (CLIResult, error) {
	return ExecuteWithConsole(ctx, inv, term.Default())
}

// ExecuteWithConsole maps a canonical CLIInvocation to a reveal execution.
//
// Responsibilities:
//   - Build the registry (embedded defaults overlaid by --registry).
//   - Open the course page with its backup policy.
//   - Run one reveal, or the interactive loop with registry hot-reload.
//   - Translate outcomes to semantic exit codes.
func ExecuteWithConsole(ctx context.Context, inv CLIInvocation, console *term.Console) (res CLIResult, execErr error) {
	res.ExitCode = ExitInternalError
	if console == nil {
		return res, fmt.Errorf("nil console")
	}

	registry, err := buildRegistry(inv.RegistryPath)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}
	holder := &registryHolder{reg: registry}

	store, err := page.Load(inv.PagePath, inv.BackupDir)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}

	newRevealer := func() (*reveal.Revealer, error) {
		return reveal.NewRevealer(holder.Current(), console, console, store)
	}

	if !inv.Interactive {
		r, err := newRevealer()
		if err != nil {
			return res, err
		}
		return RevealOnce(r, inv.ExerciseID)
	}

	if inv.RegistryPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		err := WatchRegistry(watchCtx, inv.RegistryPath, func(reg *reveal.Registry) {
			holder.Replace(reg)
		})
		if err != nil {
			res.ExitCode = ExitConfigError
			return res, fmt.Errorf("watch registry: %w", err)
		}
	}

	return runInteractive(ctx, console, newRevealer)
}

// RevealOnce performs a single reveal and maps its outcome to an exit code.
func RevealOnce(revealer SolutionRevealer, exerciseID string) (CLIResult, error) {
	if revealer == nil {
		return CLIResult{ExitCode: ExitInternalError}, fmt.Errorf("nil revealer")
	}
	out, err := revealer.Reveal(exerciseID)
	code, mappedErr := outcomeExit(out, err)
	return CLIResult{ExitCode: code, Outcome: out}, mappedErr
}

// runInteractive reads exercise identifiers line by line and reveals each in
// turn. Reveals run strictly one at a time; an outcome of one line never
// affects the next. The session ends on EOF with the last outcome recorded.
func runInteractive(ctx context.Context, console *term.Console, newRevealer func() (*reveal.Revealer, error)) (CLIResult, error) {
	res := CLIResult{ExitCode: ExitSuccess}
	for {
		select {
		case <-ctx.Done():
			res.ExitCode = ExitInternalError
			return res, ctx.Err()
		default:
		}

		id, ok, err := console.ReadLine("Ejercicio: ")
		if err != nil {
			res.ExitCode = ExitInternalError
			return res, err
		}
		if !ok {
			return res, nil
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		r, err := newRevealer()
		if err != nil {
			res.ExitCode = ExitInternalError
			return res, err
		}
		out, rerr := r.Reveal(id)
		res.Outcome = out
		if out == reveal.OutcomeNone {
			res.ExitCode = ExitInternalError
			return res, rerr
		}
		// Configuration errors were already notified; the session continues.
	}
}

func outcomeExit(out reveal.Outcome, err error) (int, error) {
	switch {
	case out == reveal.OutcomeRevealed, out == reveal.OutcomeCancelled:
		return ExitSuccess, nil
	case out == reveal.OutcomeWrongPassword:
		return ExitWrongPassword, nil
	case out.IsConfigError():
		return ExitConfigError, err
	default:
		if err == nil {
			err = fmt.Errorf("reveal aborted with no terminal outcome")
		}
		return ExitInternalError, err
	}
}
