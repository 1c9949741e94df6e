package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var (
	// ErrUnsupportedPlatform is returned when no viewer command is known for the OS.
	ErrUnsupportedPlatform = errors.New("no viewer command for platform")
	ErrInvalidPID          = errors.New("invalid process id")
)

// OpenCommand returns the command and arguments that open path with the
// system's default application on goos.
func OpenCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Open starts the default viewer for path without waiting for it to exit.
// ctx only gates the start: the viewer runs detached in its own process
// group and is not killed when ctx is canceled or the caller exits.
func Open(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args, err := OpenCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...) // #nosec G204 -- fixed viewer binary, path is an argument
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	// Reap in background; viewers may outlive us.
	go func() { _ = cmd.Wait() }()
	return nil
}
