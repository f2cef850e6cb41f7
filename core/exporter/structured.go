package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"rule-sync/core/kibana"
	"rule-sync/core/rule"

	"go.uber.org/zap"
)

// Structured exports rules through the external rule toolkit CLI. The
// toolkit writes one TOML or JSON document per rule into a scratch
// directory; those documents are read back and normalized.
//
// The CLI path is best effort by design: a missing interpreter, a non-zero
// exit or an unparseable file all come back as error strings so the caller
// can fall back to the raw API export.
type Structured struct {
	cfg  Config
	conn kibana.Config
	log  *zap.Logger

	// runner is swapped out in tests.
	runner func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)
}

// NewStructured creates a CLI-backed export source for one connection.
func NewStructured(cfg Config, conn kibana.Config, log *zap.Logger) *Structured {
	if log == nil {
		log = zap.NewNop()
	}
	return &Structured{cfg: cfg, conn: conn, log: log, runner: runCommand}
}

func (s *Structured) Name() string { return "structured" }

// Export runs one CLI export into a temporary directory and parses every
// rule document it produced. Files with a "_" prefix are toolkit side
// output, not rules.
func (s *Structured) Export(ctx context.Context) ([]rule.Rule, []string) {
	var rules []rule.Rule
	var errs []string

	exportDir, err := os.MkdirTemp("", "dr_export_")
	if err != nil {
		return nil, []string{fmt.Sprintf("CLI export error: %v", err)}
	}
	defer os.RemoveAll(exportDir)

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"-m", s.cfg.Module, "kibana",
		"--kibana-url", s.conn.Endpoint,
		"--api-key", s.conn.APIKey,
	}
	if s.conn.Space != "" && s.conn.Space != "default" {
		args = append(args, "--space", s.conn.Space)
	}
	args = append(args, "export-rules",
		"-d", exportDir,
		"--skip-errors",
		"--export-exceptions",
		"--strip-version",
	)

	s.log.Debug("running structured export",
		zap.String("command", s.cfg.Command),
		zap.String("dir", exportDir))

	_, stderr, err := s.runner(runCtx, s.cfg.Command, args...)
	if err != nil {
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			errs = append(errs, fmt.Sprintf("CLI export timed out after %d seconds", s.cfg.TimeoutSeconds))
		case errors.Is(err, exec.ErrNotFound):
			errs = append(errs, "rule toolkit CLI not found, falling back to API")
		default:
			var exit *exec.ExitError
			if errors.As(err, &exit) {
				errs = append(errs, fmt.Sprintf("CLI export failed (code %d): %s",
					exit.ExitCode(), snippet(stderr)))
			} else {
				errs = append(errs, fmt.Sprintf("CLI export error: %v", err))
			}
		}
		return rules, errs
	}

	entries, err := os.ReadDir(exportDir)
	if err != nil {
		return rules, append(errs, fmt.Sprintf("CLI export error: %v", err))
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") {
			continue
		}
		ext := filepath.Ext(name)
		if ext != ".toml" && ext != ".json" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(exportDir, name))
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to parse %s: %v", name, err))
			continue
		}
		r, err := rule.Parse(content, "", name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to parse %s: %v", name, err))
			continue
		}
		rules = append(rules, r)
	}

	s.log.Debug("structured export finished",
		zap.Int("rules", len(rules)), zap.Int("errors", len(errs)))
	return rules, errs
}

// CLIAvailable reports whether the toolkit interpreter is on PATH. Used by
// the health endpoint.
func CLIAvailable(cfg Config) bool {
	_, err := exec.LookPath(cfg.Command)
	return err == nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "PYTHONDONTWRITEBYTECODE=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// snippet truncates process output for error reporting.
func snippet(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > 500 {
		s = s[:500]
	}
	return s
}
