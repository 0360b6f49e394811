//go:build !windows

package runner

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

func buildCommand(root, mode string) *exec.Cmd {
	script := "start-server.sh"
	if mode == ModeFull {
		script = "run.sh"
	}
	path := filepath.Join(root, "scripts", script)

	shell := "/bin/bash"
	if runtime.GOOS == "darwin" {
		shell = "/bin/zsh"
	}

	// Single quotes survive paths with spaces ("Application Support").
	quoted := fmt.Sprintf("'%s'", strings.ReplaceAll(path, "'", `'\''`))

	if runtime.GOOS == "darwin" {
		// `script` allocates a PTY so npm/python output arrives unbuffered.
		return exec.Command("script", "-q", "/dev/stdout", shell, "-l", "-c", quoted)
	}
	return exec.Command(shell, "-l", "-c", quoted)
}

func prepareCommand(cmd *exec.Cmd) {}
