// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/arthur-debert/dirtree/pkg/ui/styles"
)

// Renderer prints results as pterm prefixed lines and errors with the
// lipgloss Error style.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.CommandResult:
		for _, item := range v.Items {
			if _, err := fmt.Fprint(r.output, r.line(item)); err != nil {
				return err
			}
		}
		if v.Elapsed != "" && len(v.Items) > 1 {
			_, err := fmt.Fprintln(r.output, styles.GetStyle("Muted").Render(
				fmt.Sprintf("%d operations in %s", len(v.Items), v.Elapsed)))
			return err
		}
		return nil
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) line(item types.OperationItem) string {
	path := styles.GetStyle("Path")
	op := styles.GetStyle("Operation").Render(item.Operation)

	desc := path.Render(item.Path)
	if item.Target != "" {
		desc = fmt.Sprintf("%s → %s", path.Render(item.Path), path.Render(item.Target))
	}

	if item.Status == types.StatusFailed {
		msg := fmt.Sprintf("%s %s %s", op, desc, styles.GetStyle("ErrorCode").Render(item.Error))
		return pterm.Error.Sprintln(msg)
	}

	if item.Output != "" {
		desc = fmt.Sprintf("%s → %s", item.Path, path.Render(item.Output))
	}
	return pterm.Success.Sprintln(fmt.Sprintf("%s %s", op, desc))
}

// RenderError renders an error with its code in the Error style
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, FormatError(err))
	return err2
}

// FormatError styles an error for a terminal. Coded errors already carry
// their code in the message.
func FormatError(err error) string {
	return styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprint(r.output, pterm.Info.Sprintln(msg))
	return err
}
