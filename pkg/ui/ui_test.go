package ui_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/arthur-debert/dirtree/pkg/ui"
)

func sampleResult() *types.CommandResult {
	return &types.CommandResult{
		Command: "copy",
		Elapsed: "1ms",
		Items: []types.OperationItem{
			{Operation: "copy", Path: "src", Target: "dst", Status: types.StatusDone},
			{Operation: "copy", Path: "other", Target: "dst2", Status: types.StatusFailed,
				Error: "[IO] open other/a: permission denied", ErrorCode: "IO"},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "create terminal renderer", format: ui.FormatTerminal},
		{name: "create text renderer", format: ui.FormatText},
		{name: "create json renderer", format: ui.FormatJSON},
		{name: "create yaml renderer", format: ui.FormatYAML},
		{name: "create auto renderer with buffer", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(tt.format, buf)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, renderer)
			}
		})
	}
}

func TestAutoRendererFallsBackToText(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatAuto, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderError(assert.AnError))
	assert.Equal(t, "Error: assert.AnError general error for testing\n", buf.String())
}

func TestRendererInterface(t *testing.T) {
	formats := []ui.Format{
		ui.FormatTerminal,
		ui.FormatText,
		ui.FormatJSON,
		ui.FormatYAML,
	}

	for _, format := range formats {
		t.Run(format.String()+" renderer implements interface", func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			assert.NoError(t, renderer.RenderMessage("test message"))
			assert.NoError(t, renderer.RenderError(assert.AnError))
			assert.NoError(t, renderer.RenderResult(sampleResult()))
			assert.NoError(t, renderer.RenderResult(map[string]string{"test": "data"}))
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("render coded error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(errors.WrapIO(fs.ErrPermission, "rmdir", "/a/b")))

		var result types.ErrorReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "IO", result.Code)
		assert.Equal(t, "/a/b", result.Details["path"])
		assert.Contains(t, result.Error, "permission denied")
	})

	t.Run("render command result", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleResult()))

		var result types.CommandResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "copy", result.Command)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "dst", result.Items[0].Target)
		assert.Equal(t, types.StatusFailed, result.Items[1].Status)
		assert.Equal(t, "IO", result.Items[1].ErrorCode)
	})
}

func TestYAMLRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatYAML, buf)
	require.NoError(t, err)

	t.Run("render command result", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleResult()))

		var result types.CommandResult
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "copy", result.Command)
		assert.Equal(t, "1ms", result.Elapsed)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "other", result.Items[1].Path)
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(errors.New(errors.ErrPathConflict, "not a directory: x")))

		var result types.ErrorReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "PATH_CONFLICT", result.Code)
	})

	t.Run("renderer is reusable", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("one"))
		require.NoError(t, renderer.RenderMessage("two"))
		assert.Contains(t, buf.String(), "message: one")
		assert.Contains(t, buf.String(), "message: two")
	})
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))
		assert.Equal(t, "hello world\n", buf.String())
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))
		assert.Equal(t, "Error: assert.AnError general error for testing\n", buf.String())
	})

	t.Run("render command result", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleResult()))
		assert.Equal(t,
			"done   copy     src -> dst\n"+
				"failed copy     other -> dst2: [IO] open other/a: permission denied\n",
			buf.String())
	})

	t.Run("sanitize output is printed bare", func(t *testing.T) {
		buf.Reset()
		result := &types.CommandResult{Command: "sanitize", Items: []types.OperationItem{
			{Operation: "sanitize", Path: "a:b", Output: "a_b", Status: types.StatusDone},
		}}
		require.NoError(t, renderer.RenderResult(result))
		assert.Equal(t, "a_b\n", buf.String())
	})

	t.Run("render unknown result type", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(map[string]string{"foo": "bar"}))
		assert.Contains(t, buf.String(), "map[foo:bar]")
	})
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))
		assert.Contains(t, buf.String(), "hello world")
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))
		assert.Contains(t, buf.String(), "assert.AnError")
	})

	t.Run("render command result", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleResult()))
		out := buf.String()
		assert.Contains(t, out, "src")
		assert.Contains(t, out, "dst2")
		assert.Contains(t, out, "permission denied")
		assert.Contains(t, out, "2 operations in 1ms")
	})

	t.Run("failed item names its target", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleResult()))

		var failedLine string
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.Contains(line, "permission denied") {
				failedLine = line
			}
		}
		require.NotEmpty(t, failedLine)
		assert.Contains(t, failedLine, "other")
		assert.Contains(t, failedLine, "dst2")
	})
}
