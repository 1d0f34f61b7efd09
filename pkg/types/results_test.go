package types

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/arthur-debert/dirtree/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestCommandResultFailed(t *testing.T) {
	r := &CommandResult{Command: "rm", Items: []OperationItem{
		{Operation: "rm", Path: "a", Status: StatusDone},
		{Operation: "rm", Path: "b", Status: StatusFailed, Error: "denied"},
		{Operation: "rm", Path: "c", Status: StatusFailed, Error: "later"},
	}}

	assert.True(t, r.Failed())
	first := r.FirstError()
	if assert.NotNil(t, first) {
		assert.Equal(t, "b", first.Path)
	}

	ok := &CommandResult{Command: "rm", Items: []OperationItem{{Path: "a", Status: StatusDone}}}
	assert.False(t, ok.Failed())
	assert.Nil(t, ok.FirstError())
}

func TestNewErrorReport(t *testing.T) {
	err := errors.WrapIO(fs.ErrPermission, "remove", "/x/y")
	report := NewErrorReport(err)

	assert.Equal(t, "IO", report.Code)
	assert.Contains(t, report.Error, "permission denied")
	assert.Equal(t, "/x/y", report.Details["path"])
	assert.Equal(t, "remove", report.Details["op"])

	plain := NewErrorReport(fmt.Errorf("boom"))
	assert.Equal(t, "UNKNOWN", plain.Code)
	assert.Nil(t, plain.Details)
}
