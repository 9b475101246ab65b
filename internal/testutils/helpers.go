package testutils

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TempFile returns an absolute path named name inside a per-test directory.
// The file itself is not created.
func TempFile(t *testing.T, name string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp file")

	return absPath
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// Console is a scripted console: Ask replays the given lines in order and
// returns io.EOF once they are exhausted. Everything printed is recorded.
type Console struct {
	mu      sync.Mutex
	lines   []string
	out     strings.Builder
	prompts []string
}

// NewConsole creates a scripted console answering with lines.
func NewConsole(lines ...string) *Console {
	return &Console{lines: lines}
}

func (c *Console) Say(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(&c.out, format+"\n", args...)
}

func (c *Console) Markdown(md string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.WriteString(md)
	if !strings.HasSuffix(md, "\n") {
		c.out.WriteString("\n")
	}
}

func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	c.out.WriteString(prompt)
	if len(c.lines) == 0 {
		return "", io.EOF
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

// Output returns everything printed so far.
func (c *Console) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.String()
}

// Prompts returns the prompts shown so far.
func (c *Console) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}

// Remaining returns the number of unread scripted lines.
func (c *Console) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
