//go:build windows

package runner

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// prepareCommand hands Windows the exact command line produced by
// EncodeCommandLine so the child's argv matches ours token for token.
func prepareCommand(cmd *exec.Cmd, argv []string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:    EncodeCommandLine(argv),
		HideWindow: true,
	}
}

// terminate has no polite equivalent for console children, so it kills.
func terminate(cmd *exec.Cmd) error {
	return forceKill(cmd)
}

// forceKill kills the child.
func forceKill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
