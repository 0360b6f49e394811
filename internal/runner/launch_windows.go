//go:build windows

package runner

import (
	"os/exec"
	"path/filepath"
	"syscall"
)

func buildCommand(root, mode string) *exec.Cmd {
	script := "start-server.bat"
	if mode == ModeFull {
		script = "run.bat"
	}
	return exec.Command("cmd.exe", "/c", filepath.Join(root, "scripts", script))
}

// prepareCommand keeps the child from opening a console window.
func prepareCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: 0x08000000,
	}
}
