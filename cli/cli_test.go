package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	icl "solgate/internal/cli"
	"solgate/internal/page"
	"solgate/internal/reveal"
	"solgate/internal/term"
)

const coursePage = `<!DOCTYPE html>
<html lang="es">
<head><title>UD1 - Arquitecturas de red</title></head>
<body>
  <h2>Ejercicio UD1-1</h2>
  <p>¿Qué arquitectura usa un navegador y un servidor web?</p>
  <button>Mostrar solución</button>
  <div id="solution-UD1-1" style="display: none">Arquitectura cliente-servidor.</div>
</body>
</html>`

func writeCoursePage(t *testing.T, workDir string) string {
	t.Helper()
	path := filepath.Join(workDir, "ud1.html")
	if err := os.WriteFile(path, []byte(coursePage), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	return path
}

// runWith drives a full parse+execute round with scripted terminal input.
func runWith(t *testing.T, input string, args ...string) (icl.CLIResult, string, error) {
	t.Helper()
	inv, err := icl.ParseInvocation(args)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	console := term.NewConsole(strings.NewReader(input), &out)
	res, execErr := icl.ExecuteWithConsole(context.Background(), inv, console)
	return res, out.String(), execErr
}

func TestReveal_EndToEnd_CorrectPassword(t *testing.T) {
	workDir := t.TempDir()
	pagePath := writeCoursePage(t, workDir)

	res, out, err := runWith(t, "cliente-servidor\n",
		"--workdir", workDir, "--page", "ud1.html", "--exercise", "UD1-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != icl.ExitSuccess || res.Outcome != reveal.OutcomeRevealed {
		t.Fatalf("res = %+v", res)
	}
	if strings.Contains(out, "incorrecta") {
		t.Fatalf("no alert expected: %q", out)
	}

	reloaded, err := page.Load(pagePath, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Hidden("solution-UD1-1") {
		t.Fatalf("solution-UD1-1 still hidden")
	}

	// The pristine page survives in the backup directory.
	backup, err := os.ReadFile(filepath.Join(workDir, "_old", "ud1.html"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != coursePage {
		t.Fatalf("backup does not hold the original page")
	}
}

func TestReveal_EndToEnd_WrongPassword(t *testing.T) {
	workDir := t.TempDir()
	pagePath := writeCoursePage(t, workDir)

	res, out, err := runWith(t, "wrong\n",
		"--workdir", workDir, "--page", "ud1.html", "--exercise", "UD1-1")
	if err != nil {
		t.Fatalf("wrong password is not a system error: %v", err)
	}
	if res.ExitCode != icl.ExitWrongPassword {
		t.Fatalf("exit = %d", res.ExitCode)
	}
	if !strings.Contains(out, "Contraseña incorrecta.") {
		t.Fatalf("missing alert: %q", out)
	}

	reloaded, err := page.Load(pagePath, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Hidden("solution-UD1-1") {
		t.Fatalf("block revealed on mismatch")
	}
	// Nothing was mutated, so no backup should have been taken.
	if _, err := os.Stat(filepath.Join(workDir, "_old")); !os.IsNotExist(err) {
		t.Fatalf("backup dir created without a mutation")
	}
}

func TestReveal_EndToEnd_UnknownExercise(t *testing.T) {
	workDir := t.TempDir()
	writeCoursePage(t, workDir)

	res, out, err := runWith(t, "anything\n",
		"--workdir", workDir, "--page", "ud1.html", "--exercise", "nonexistent-id")
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	if res.ExitCode != icl.ExitConfigError || res.Outcome != reveal.OutcomeUnknownExercise {
		t.Fatalf("res = %+v", res)
	}
	if strings.Contains(out, "Contraseña para") {
		t.Fatalf("prompt must not be shown: %q", out)
	}
}

func TestReveal_EndToEnd_RegistryFileOverridesPassword(t *testing.T) {
	workDir := t.TempDir()
	pagePath := writeCoursePage(t, workDir)
	registryPath := filepath.Join(workDir, "registry.yaml")
	if err := os.WriteFile(registryPath, []byte("exercises:\n  UD1-1: clave-del-profe\n"), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}

	// The embedded password no longer matches.
	res, _, err := runWith(t, "cliente-servidor\n",
		"--workdir", workDir, "--page", "ud1.html", "--registry", "registry.yaml", "--exercise", "UD1-1")
	if err != nil || res.ExitCode != icl.ExitWrongPassword {
		t.Fatalf("res = %+v, err = %v", res, err)
	}

	// The file's password does.
	res, _, err = runWith(t, "clave-del-profe\n",
		"--workdir", workDir, "--page", "ud1.html", "--registry", "registry.yaml", "--exercise", "UD1-1")
	if err != nil || res.ExitCode != icl.ExitSuccess {
		t.Fatalf("res = %+v, err = %v", res, err)
	}

	reloaded, err := page.Load(pagePath, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Hidden("solution-UD1-1") {
		t.Fatalf("solution still hidden")
	}
}

func TestReveal_EndToEnd_RepeatRunsAreIdempotent(t *testing.T) {
	workDir := t.TempDir()
	pagePath := writeCoursePage(t, workDir)
	args := []string{"--workdir", workDir, "--page", "ud1.html", "--exercise", "UD1-1"}

	for i := 0; i < 2; i++ {
		res, _, err := runWith(t, "cliente-servidor\n", args...)
		if err != nil || res.ExitCode != icl.ExitSuccess {
			t.Fatalf("run %d: res = %+v, err = %v", i+1, res, err)
		}
	}

	reloaded, err := page.Load(pagePath, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Hidden("solution-UD1-1") {
		t.Fatalf("solution hidden after repeated reveals")
	}
	// The backup still holds the pristine page from before the first run.
	backup, err := os.ReadFile(filepath.Join(workDir, "_old", "ud1.html"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != coursePage {
		t.Fatalf("backup overwritten by the second run")
	}
}

func TestRun_InvalidInvocationExitCode(t *testing.T) {
	res, err := icl.Run(context.Background(), []string{"--workdir", "relative", "--page", "p.html", "--exercise", "x"})
	if err == nil {
		t.Fatalf("expected invocation error")
	}
	if res.ExitCode != icl.ExitInvalidInvocation {
		t.Fatalf("exit = %d", res.ExitCode)
	}
}
