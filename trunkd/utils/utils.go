package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

// WritePidFile records a service pid under dir so stop/status tooling can
// find the process later.
func WritePidFile(dir string, name string, pid int) error {
	pidFilename := filepath.Join(dir, fmt.Sprintf("%s.pid", name))

	pidFile, err := os.Create(pidFilename)
	if err != nil {
		return err
	}

	defer pidFile.Close()
	_, err = pidFile.WriteString(fmt.Sprintf("%d", pid))
	return err
}

// ReadPidFile reads a service pid previously written with WritePidFile.
func ReadPidFile(dir string, name string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("%s.pid", name)))
	if err != nil {
		return 0, err
	}

	data = bytes.TrimSpace(data)
	return strconv.Atoi(string(data))
}

// RemovePidFile removes a service pid file.
func RemovePidFile(dir string, name string) error {
	return os.Remove(filepath.Join(dir, fmt.Sprintf("%s.pid", name)))
}

// StopProcess signals SIGTERM to the process recorded in the pid file. Once
// the pid has been read, the pid file is removed, even if the process is
// already dead, to prevent stale files from accumulating across restarts. A
// pid file that cannot be read or parsed is left in place.
func StopProcess(dir string, name string) error {
	pid, err := ReadPidFile(dir, name)
	if err != nil {
		return fmt.Errorf("failed to read pid file for %s: %w", name, err)
	}

	defer RemovePidFile(dir, name)

	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if err == os.ErrProcessDone || err == syscall.ESRCH {
			return nil
		}
		return fmt.Errorf("failed to signal %s (pid %d): %w", name, pid, err)
	}
	return nil
}
