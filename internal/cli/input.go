package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess           = 0
	ExitWrongPassword     = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// CLIInvocation is the fully canonicalized, deterministic description of a
// run.
//
// All relative paths are resolved relative to WorkDir.
//
// NOTE: WorkDir is required and must be absolute; this prevents any
// dependency on the process current working directory.
type CLIInvocation struct {
	WorkDir      string
	PagePath     string
	RegistryPath string // empty: embedded registry only
	BackupDir    string // resolved; empty disables page backups
	ExerciseID   string
	Interactive  bool

	OriginalPage     string
	OriginalRegistry string
	OriginalBackup   string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses CLI flags into a canonical CLIInvocation.
//
// Determinism goals:
//   - Does not read env vars.
//   - Does not read/assume the process CWD.
//   - Requires WorkDir to be explicit and absolute.
func ParseInvocation(args []string) (CLIInvocation, error) {
	fs := flag.NewFlagSet("solgate", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var workDir string
	var pagePath string
	var registryPath string
	var backupDir string
	var exerciseID string
	var interactive bool

	fs.StringVar(&workDir, "workdir", "", "Absolute working directory. Required.")
	fs.StringVar(&pagePath, "page", "", "Course page to operate on. Required.")
	fs.StringVar(&registryPath, "registry", "", "Registry YAML overlaying the embedded exercises (optional).")
	fs.StringVar(&backupDir, "backup-dir", "_old", "Backup directory for pages; empty disables backups.")
	fs.StringVar(&exerciseID, "exercise", "", "Exercise identifier to reveal.")
	fs.BoolVar(&interactive, "interactive", false, "Read exercise identifiers from stdin, one per line.")

	// We intentionally do not accept environment-derived defaults.
	if err := fs.Parse(args); err != nil {
		return CLIInvocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return CLIInvocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	workDir = filepath.Clean(workDir)
	if workDir == "" || workDir == "." {
		return CLIInvocation{}, invalidInvocationf("--workdir is required")
	}
	if !filepath.IsAbs(workDir) {
		return CLIInvocation{}, invalidInvocationf("--workdir must be an absolute path (got %q)", workDir)
	}

	if pagePath == "" {
		return CLIInvocation{}, invalidInvocationf("--page is required")
	}
	if interactive && exerciseID != "" {
		return CLIInvocation{}, invalidInvocationf("--exercise and --interactive are mutually exclusive")
	}
	if !interactive && strings.TrimSpace(exerciseID) == "" {
		return CLIInvocation{}, invalidInvocationf("--exercise is required unless --interactive is set")
	}

	resolvedPage, err := resolveUnderWorkDir(workDir, pagePath)
	if err != nil {
		return CLIInvocation{}, err
	}

	inv := CLIInvocation{
		WorkDir:        workDir,
		PagePath:       resolvedPage,
		ExerciseID:     exerciseID,
		Interactive:    interactive,
		OriginalPage:   pagePath,
		OriginalBackup: backupDir,
	}

	if strings.TrimSpace(registryPath) != "" {
		resolvedRegistry, err := resolveUnderWorkDir(workDir, registryPath)
		if err != nil {
			return CLIInvocation{}, err
		}
		inv.RegistryPath = resolvedRegistry
		inv.OriginalRegistry = registryPath
	}

	if strings.TrimSpace(backupDir) != "" {
		resolvedBackup, err := resolveUnderWorkDir(workDir, backupDir)
		if err != nil {
			return CLIInvocation{}, err
		}
		inv.BackupDir = resolvedBackup
	}

	return inv, nil
}

func resolveUnderWorkDir(workDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", invalidInvocationf("path must not be empty")
	}
	clean := filepath.Clean(p)
	if clean == "." {
		return "", invalidInvocationf("path must not be '.'")
	}

	// If absolute, accept as-is; it is still deterministic.
	// If relative, resolve under WorkDir.
	if filepath.IsAbs(clean) {
		return clean, nil
	}

	// WorkDir is required to be absolute, so Join does not consult process CWD.
	return filepath.Clean(filepath.Join(workDir, clean)), nil
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// If the error is not a known invocation error, it returns ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
