// Package clip reads the system clipboard for movr's --clipboard input
// source (spec.md §6; SPEC_FULL §4.2), shelling out to a platform pasteboard
// command the way the original hindman/bmv tool used pyperclip.
package clip

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
)

// Read returns the current clipboard contents.
func Read() (string, error) {
	cmd, err := pasteCommand()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("reading clipboard via %q: %w", cmd.Path, err)
	}
	return out.String(), nil
}

func pasteCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbpaste"), nil
	case "linux":
		if path, err := exec.LookPath("wl-paste"); err == nil {
			return exec.Command(path), nil
		}
		if path, err := exec.LookPath("xclip"); err == nil {
			return exec.Command(path, "-selection", "clipboard", "-o"), nil
		}
		return nil, fmt.Errorf("no clipboard tool found (tried wl-paste, xclip)")
	default:
		return nil, fmt.Errorf("clipboard input is not supported on %s", runtime.GOOS)
	}
}
