package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	rkerrors "github.com/ricekit/ricekit/pkg/errors"
)

// Result captures stdout/stderr emitted by an attached command run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the command through the OS shell and blocks until it exits.
// A non-zero exit code yields a ShellExitError carrying the code and the
// captured stderr.
func Run(ctx context.Context, command, workDir string) (Result, error) {
	shell, shellArgs, err := determineShell()
	if err != nil {
		return Result{}, err
	}

	args := append(shellArgs, command)
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Env = os.Environ()
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &rkerrors.ShellExitError{
				Command:  command,
				ExitCode: res.ExitCode,
				Stderr:   res.Stderr,
			}
		}
		return res, runErr
	}

	return res, nil
}

// Start spawns the command through the OS shell in its own session and
// returns as soon as the process is launched. The child is never awaited or
// tracked; its eventual exit code is invisible to the caller.
func Start(command, workDir string) error {
	shell, shellArgs, err := determineShell()
	if err != nil {
		return err
	}

	args := append(shellArgs, command)
	cmd := exec.Command(shell, args...)
	cmd.Env = os.Environ()
	if workDir != "" {
		cmd.Dir = workDir
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func determineShell() (string, []string, error) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}, nil
	}

	if path, err := exec.LookPath("bash"); err == nil {
		return path, []string{"-c"}, nil
	}

	if path, err := exec.LookPath("sh"); err == nil {
		return path, []string{"-c"}, nil
	}

	return "", nil, fmt.Errorf("no suitable shell found")
}
