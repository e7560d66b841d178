// Package prompter implements the consent prompt for interactive terminals.
package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// PostFunc delivers a callback onto the bridge dispatcher.
type PostFunc func(func())

// CliPrompter implements ports.Prompter over terminal I/O. Reading happens
// on a prompter goroutine; the result is posted back to the dispatcher so
// it arrives strictly after the handler that requested the prompt returned.
type CliPrompter struct {
	in   io.Reader
	out  io.Writer
	post PostFunc
}

var _ ports.Prompter = (*CliPrompter)(nil)

// NewCliPrompter creates a new CliPrompter.
func NewCliPrompter(in io.Reader, out io.Writer, post PostFunc) *CliPrompter {
	return &CliPrompter{in: in, out: out, post: post}
}

// IsInteractive checks if the input is a terminal.
func (p *CliPrompter) IsInteractive() bool {
	if f, ok := p.in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// Prompt implements ports.Prompter.
func (p *CliPrompter) Prompt(req entities.PermissionRequest, done func(entities.PromptResult)) {
	go func() {
		res := p.ask(req)
		p.post(func() {
			done(res)
		})
	}()
}

func (p *CliPrompter) ask(req entities.PermissionRequest) entities.PromptResult {
	_, _ = fmt.Fprintf(p.out, "Page Request: %s asks to:\n", req.Origin)
	for _, c := range req.Capabilities {
		_, _ = fmt.Fprintf(p.out, "- [%s] %s\n", entities.AssessCapability(c), entities.DescribeCapability(c))
	}
	_, _ = fmt.Fprintf(p.out, "Allow? [y/n/always]: ")

	scanner := bufio.NewScanner(p.in)
	if scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return entities.PromptResult{Granted: true}
		case "a", "always":
			return entities.PromptResult{Granted: true, Always: true}
		default:
			return entities.PromptResult{}
		}
	}
	// EOF or read error: default deny.
	return entities.PromptResult{}
}
