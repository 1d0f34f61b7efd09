// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dirtree/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.CommandResult:
		for _, item := range v.Items {
			if _, err := fmt.Fprintln(r.output, Line(item)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// Line formats one item. Items carrying an output value (sanitized names)
// print just that value so the output can be piped.
func Line(item types.OperationItem) string {
	if item.Output != "" && item.Status != types.StatusFailed {
		return item.Output
	}
	line := fmt.Sprintf("%-6s %-8s %s", item.Status, item.Operation, item.Path)
	if item.Target != "" {
		line += " -> " + item.Target
	}
	if item.Error != "" {
		line += ": " + item.Error
	}
	return line
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
