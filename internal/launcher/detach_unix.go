//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach starts the child in its own session so it survives this process
// and does not receive signals sent to our process group.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
