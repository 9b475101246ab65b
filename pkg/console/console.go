// Package console is the line-oriented user interface of the assistant.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Console is what steps use to talk to the user.
type Console interface {
	// Say prints a formatted line.
	Say(format string, args ...any)
	// Ask prints prompt and blocks for one sanitized line.
	// It returns io.EOF when input is exhausted and ctx.Err() on cancellation.
	Ask(ctx context.Context, prompt string) (string, error)
	// Markdown prints a markdown document, rendered when a renderer is set.
	Markdown(md string)
}

// Renderer turns markdown into terminal output.
type Renderer func(string) (string, error)

// Option configures a TextConsole.
type Option func(*TextConsole)

// WithRenderer configures the markdown renderer.
func WithRenderer(r Renderer) Option {
	return func(c *TextConsole) {
		c.renderer = r
	}
}

// WithMaxInputSize overrides the sanitizer size limit.
func WithMaxInputSize(n int) Option {
	return func(c *TextConsole) {
		c.maxInput = n
	}
}

// TextConsole implements Console over a reader and a writer.
//
// Reads are pumped by a single goroutine into a channel so that Ask can
// return on context cancellation while the underlying read is blocked.
type TextConsole struct {
	reader   *bufio.Reader
	writer   io.Writer
	renderer Renderer
	maxInput int

	mu        sync.Mutex
	inputChan chan inputResult
	startOnce sync.Once
	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}
}

type inputResult struct {
	text string
	err  error
}

// NewText creates a console over r and w; nil means Stdin and Stdout.
func NewText(r io.Reader, w io.Writer, opts ...Option) *TextConsole {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	c := &TextConsole{
		reader:  bufio.NewReader(r),
		writer:  w,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TextConsole) initPump() {
	c.startOnce.Do(func() {
		c.inputChan = make(chan inputResult)
		go c.pump()
	})
}

// pump exits on EOF or once Close is called and its pending line is
// dropped. A read already blocked in the underlying reader finishes first.
func (c *TextConsole) pump() {
	defer close(c.stopped)
	for {
		text, err := c.reader.ReadString('\n')

		if text != "" && !c.deliver(inputResult{text: text}) {
			return
		}

		if err != nil {
			if err == io.EOF {
				close(c.inputChan)
				return
			}
			if !c.deliver(inputResult{err: err}) {
				return
			}
			// Backoff so a persistent read failure does not spin.
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (c *TextConsole) deliver(res inputResult) bool {
	select {
	case c.inputChan <- res:
		return true
	case <-c.done:
		return false
	}
}

// Close stops the reader goroutine. Later Ask calls return io.EOF.
// It does not close the underlying reader.
func (c *TextConsole) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// Say prints a formatted line.
func (c *TextConsole) Say(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.writer, format+"\n", args...)
}

// Markdown prints md through the renderer, or verbatim when rendering fails.
func (c *TextConsole) Markdown(md string) {
	output := md
	if c.renderer != nil {
		if rendered, err := c.renderer(md); err == nil {
			output = rendered
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.writer, strings.TrimRight(output, "\n"))
}

// Ask prints prompt and reads one line. Lines rejected by the sanitizer are
// reported and re-prompted.
func (c *TextConsole) Ask(ctx context.Context, prompt string) (string, error) {
	c.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-c.done:
			return "", io.EOF
		default:
			c.mu.Lock()
			fmt.Fprint(c.writer, prompt)
			c.mu.Unlock()
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-c.done:
			return "", io.EOF
		case res, ok := <-c.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeLine(res.text, c.maxInput)
			if err != nil {
				c.Say("Error: %v. Please try again.", err)
				continue
			}
			return clean, nil
		}
	}
}
