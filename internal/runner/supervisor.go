// Package runner supervises the PlanarAlly server process: launch, output
// streaming, readiness detection and shutdown.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"palauncher/internal/domain"
	"palauncher/internal/install"
	"palauncher/internal/update"
)

const (
	// ServerPort is the fixed port the PlanarAlly server listens on.
	ServerPort = 8000

	// ReadyMarker is the exact substring the server prints once its web
	// server is listening. This is an unstructured-output contract with the
	// server; changing it there breaks readiness detection here.
	ReadyMarker = "Starting Webserver"

	portReleaseDelay = 500 * time.Millisecond
)

// Modes select which entrypoint script is launched.
const (
	ModeFull  = "full"
	ModeQuick = "quick"
)

type Supervisor struct {
	Resolver *install.Resolver
	Updater  *update.Orchestrator
	Notifier domain.Notifier

	mu   sync.Mutex
	proc *exec.Cmd
	done chan struct{}
}

func NewSupervisor(resolver *install.Resolver, updater *update.Orchestrator, notifier domain.Notifier) *Supervisor {
	return &Supervisor{
		Resolver: resolver,
		Updater:  updater,
		Notifier: notifier,
	}
}

// Start launches the server in the given mode. A process already under
// supervision makes this an error; the previous handle is never replaced
// silently.
func (s *Supervisor) Start(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc != nil {
		return fmt.Errorf("server is already running")
	}

	// A leftover instance from a crashed launcher may still hold the port.
	KillProcessOnPort(ServerPort)
	time.Sleep(portReleaseDelay)

	if _, err := s.Updater.EnsureInstalled(false); err != nil {
		return err
	}
	root, err := s.Resolver.Root()
	if err != nil {
		return err
	}

	// Installs extracted by older launcher builds may lack execute bits.
	if runtime.GOOS != "windows" {
		for _, script := range []string{"run.sh", "start-server.sh"} {
			p := filepath.Join(root, "scripts", script)
			if _, err := os.Stat(p); err == nil {
				_ = os.Chmod(p, 0755)
			}
		}
	}

	cmd := buildCommand(root, mode)
	cmd.Dir = root
	cmd.Env = append(os.Environ(),
		"PYTHONUNBUFFERED=1",
		"NO_COLOR=1",
		"FORCE_COLOR=0",
		"TERM=dumb",
	)
	prepareCommand(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("cannot capture stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("cannot capture stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start failed: %w", err)
	}

	done := make(chan struct{})
	s.proc = cmd
	s.done = done

	var ready atomic.Bool
	go s.streamOutput(stdout, domain.EventServerLog, &ready)
	go s.streamOutput(stderr, domain.EventServerLogErr, nil)
	go s.monitor(cmd, done)

	log.Info("server started", "mode", mode, "pid", cmd.Process.Pid)
	return nil
}

// streamOutput forwards sanitized output lines as events. The first stdout
// line containing the readiness marker fires server-started exactly once.
func (s *Supervisor) streamOutput(r io.Reader, eventType string, ready *atomic.Bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		clean := SanitizeLine(scanner.Text())
		if clean == "" {
			continue
		}
		s.Notifier.Emit(eventType, clean)
		if ready != nil && strings.Contains(clean, ReadyMarker) {
			if !ready.Swap(true) {
				s.Notifier.Emit(domain.EventServerStarted, nil)
			}
		}
	}
}

// monitor reaps the process and reports its exit. The handle is cleared only
// if it is still the current one; Stop may have taken it already.
func (s *Supervisor) monitor(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}

	s.mu.Lock()
	if s.proc == cmd {
		s.proc = nil
		s.done = nil
	}
	s.mu.Unlock()

	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			log.Warn("server wait failed", "err", err)
		}
	}
	s.Notifier.Emit(domain.EventServerStopped, code)
	close(done)
}

// Stop terminates the supervised process and waits for it to be reaped.
// Stopping an idle supervisor is a no-op.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	proc, done := s.proc, s.done
	s.proc = nil
	s.done = nil
	s.mu.Unlock()

	if proc == nil {
		return nil
	}

	_ = proc.Process.Kill()
	if done != nil {
		<-done
	}
	return nil
}

// Restart stops the server, lets the OS release the port, then starts it in
// quick mode.
func (s *Supervisor) Restart() error {
	if err := s.Stop(); err != nil {
		return err
	}
	time.Sleep(portReleaseDelay)
	return s.Start(ModeQuick)
}

// Kill terminates the supervised process without waiting for exit reporting.
// Used on daemon shutdown.
func (s *Supervisor) Kill() {
	s.mu.Lock()
	proc := s.proc
	s.proc = nil
	s.done = nil
	s.mu.Unlock()

	if proc != nil {
		_ = proc.Process.Kill()
	}
}

// Running reports whether a process is currently supervised.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil
}
