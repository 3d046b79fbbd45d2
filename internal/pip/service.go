// Package pip reads the local package inventory from pip and drives
// installs through it. All interaction goes through the pip command
// line; nothing inspects site-packages directly.
package pip

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/chis/pipup/internal/logging"
)

// Runner executes a command and returns its combined output. It exists
// so tests can substitute a fake pip.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Service wraps the pip executable.
type Service struct {
	command string
	runner  Runner
}

// NewService creates a pip service for the given executable name
// ("pip" when empty).
func NewService(command string) *Service {
	if command == "" {
		command = "pip"
	}
	return &Service{command: command, runner: execRunner{}}
}

// NewServiceWithRunner creates a pip service with a custom runner.
// Used for testing.
func NewServiceWithRunner(command string, runner Runner) *Service {
	s := NewService(command)
	s.runner = runner
	return s
}

// Freeze lists installed packages with pinned versions. localOnly adds
// --local, suppressing globally visible packages inside a virtualenv.
// A non-zero pip exit is fatal and includes the captured output.
func (s *Service) Freeze(ctx context.Context, localOnly bool) ([]Package, error) {
	args := []string{"freeze"}
	if localOnly {
		args = append(args, "--local")
	}

	logging.Debug("running %s %v", s.command, args)
	out, err := s.runner.Run(ctx, s.command, args...)
	if err != nil {
		return nil, fmt.Errorf("%s freeze failed: %w: %s", s.command, err, string(out))
	}

	return ParseFreezeOutput(string(out)), nil
}

// Install installs the exact pinned version of a package. Output is
// streamed to the user's terminal; failures surface as whatever pip
// reports, wrapped with the requirement that failed.
func (s *Service) Install(ctx context.Context, name, ver string) error {
	requirement := fmt.Sprintf("%s==%s", name, ver)

	logging.Info("installing %s", requirement)
	cmd := exec.CommandContext(ctx, s.command, "install", requirement)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install %s: %w", s.command, requirement, err)
	}
	return nil
}
