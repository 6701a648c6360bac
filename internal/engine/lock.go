package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// processLock is a pid-file guard around a theme application. A stale file
// left by a dead process is reclaimed silently.
type processLock struct {
	path string
}

func acquireLock(ctx context.Context, path string) (*processLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(path); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr == nil && pid > 0 && pid != os.Getpid() {
			alive, _ := process.PidExistsWithContext(ctx, int32(pid))
			if alive {
				return nil, fmt.Errorf("another apply is in progress (pid %d)", pid)
			}
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, err
	}
	return &processLock{path: path}, nil
}

func (l *processLock) release() {
	if l == nil {
		return
	}
	_ = os.Remove(l.path)
}
