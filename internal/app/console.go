package app

import (
	"strings"
	"sync"

	"github.com/dshills/runpad/internal/integration/process"
)

// ConsoleHeader is the first line of every console.
const ConsoleHeader = "Python Console\n"

// Console accumulates the output of every run.
type Console struct {
	mu   sync.Mutex
	text strings.Builder
}

// NewConsole creates a console holding only the header.
func NewConsole() *Console {
	c := &Console{}
	c.text.WriteString(ConsoleHeader)
	return c
}

// AppendRun appends one run's output block.
// Runs that produced no output but failed show the error instead.
func (c *Console) AppendRun(res process.Result, err error) {
	output := res.Output
	if output == "" && err != nil {
		output = err.Error()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.text.WriteString("\nOutput:\n")
	c.text.WriteString(output)
	c.text.WriteString("\n")
}

// Text returns everything written so far.
func (c *Console) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text.String()
}

// Clear resets the console to the header.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text.Reset()
	c.text.WriteString(ConsoleHeader)
}
