//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// detach puts cmd in a new process group so terminal signals sent to ours
// (Ctrl+C) do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
