package types

import (
	"time"

	"github.com/arthur-debert/dirtree/pkg/errors"
)

// ItemStatus is the outcome of a single operation in a command
type ItemStatus string

const (
	StatusDone   ItemStatus = "done"
	StatusFailed ItemStatus = "failed"
)

// OperationItem records one tree operation run by a command
type OperationItem struct {
	Operation string     `json:"operation" yaml:"operation"`
	Path      string     `json:"path" yaml:"path"`
	Target    string     `json:"target,omitempty" yaml:"target,omitempty"`
	Output    string     `json:"output,omitempty" yaml:"output,omitempty"`
	Status    ItemStatus `json:"status" yaml:"status"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode string     `json:"errorCode,omitempty" yaml:"errorCode,omitempty"`
}

// CommandResult is what a CLI command hands to the renderers
type CommandResult struct {
	Command  string          `json:"command" yaml:"command"`
	Items    []OperationItem `json:"items" yaml:"items"`
	Duration time.Duration   `json:"-" yaml:"-"`
	Elapsed  string          `json:"elapsed" yaml:"elapsed"`
}

// Failed reports whether any item failed
func (r *CommandResult) Failed() bool {
	for _, item := range r.Items {
		if item.Status == StatusFailed {
			return true
		}
	}
	return false
}

// FirstError returns the first failed item, or nil
func (r *CommandResult) FirstError() *OperationItem {
	for i := range r.Items {
		if r.Items[i].Status == StatusFailed {
			return &r.Items[i]
		}
	}
	return nil
}

// ErrorReport is the machine-readable form of a fatal error
type ErrorReport struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code" yaml:"code"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewErrorReport builds an ErrorReport, pulling the code and details out of
// coded errors.
func NewErrorReport(err error) ErrorReport {
	return ErrorReport{
		Error:   err.Error(),
		Code:    string(errors.GetErrorCode(err)),
		Details: errors.GetErrorDetails(err),
	}
}
