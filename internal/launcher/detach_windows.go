//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach starts the child in a new process group so console control events
// sent to lnchr do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
