//go:build windows

package utils

import (
	"os/exec"
	"syscall"
)

const detachedProcess = 0x00000008

// ConfigureDetachedProcAttr starts the command without a console and in a
// new process group, so Ctrl+C sent to gesturecli does not reach it.
func ConfigureDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
}
