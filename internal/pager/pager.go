// Package pager pages long snapshot listings through an external pager
// (spec.md §6's --pager/--limit flags; SPEC_FULL §4.1), grounded in
// os/exec the way the hindman/bmv original shelled out to less(1).
package pager

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Show writes text to cmd (e.g. "less", "more", or a user-supplied
// $PAGER value) if cmd is non-empty, or directly to stdout otherwise.
func Show(text string, cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}

	fields := strings.Fields(cmd)
	c := exec.Command(fields[0], fields[1:]...)
	c.Stdin = strings.NewReader(text)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running pager %q: %w", cmd, err)
	}
	return nil
}

// Limit truncates lines to at most n, appending a summary line noting how
// many were dropped. n<=0 means no limit.
func Limit(lines []string, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	dropped := len(lines) - n
	out := make([]string, 0, n+1)
	out = append(out, lines[:n]...)
	out = append(out, fmt.Sprintf("... (%d more not shown)", dropped))
	return out
}
