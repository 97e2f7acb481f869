package errors_test

import (
	"errors"
	"io/fs"
	"testing"

	pkgerrors "github.com/agentstation/roster/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "file", ID: "reviewer.md"}
		assert.Equal(t, "file reviewer.md not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("failed"), pkgerrors.NewNotFoundError("file", "x", nil))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})

	t.Run("keeps cause", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("root directory", "/srv/agents", fs.ErrNotExist)
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, pkgerrors.IsNotExist(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("args", nil, "registry path is required")
		assert.Equal(t, "validation failed for field args: registry path is required", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid layout"}
		assert.Equal(t, "validation failed: invalid layout", err.Error())
	})
}

func TestDecodeError(t *testing.T) {
	jsonErr := errors.New("invalid character 'a'")
	err := &pkgerrors.DecodeError{
		File: "agents.txt",
		Attempts: []*pkgerrors.ParseError{
			pkgerrors.NewParseError("json", "agents.txt", jsonErr.Error(), jsonErr),
			pkgerrors.NewParseError("yaml", "agents.txt", "unexpected key", nil),
		},
	}

	assert.True(t, pkgerrors.IsDecodeError(err))
	assert.Equal(t, []string{"json", "yaml"}, err.Strategies())
	assert.Contains(t, err.Error(), "agents.txt")
	assert.Contains(t, err.Error(), "json: invalid character 'a'")
	assert.Contains(t, err.Error(), "yaml: unexpected key")
	assert.True(t, errors.Is(err, jsonErr))

	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "json", parseErr.Format)
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.NewIOError("rename", "a.md", base)
		assert.Equal(t, "IO error during rename of a.md: permission denied", err.Error())
		assert.True(t, errors.Is(err, base))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		assert.Error(t, pkgerrors.WrapIO("read", "x", errors.New("boom")))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad value")
	err := pkgerrors.NewConfigError("layout", "root_category is empty", base)
	assert.Equal(t, "configuration error in layout: root_category is empty", err.Error())
	assert.True(t, errors.Is(err, base))
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapValidation("f", nil))
	assert.Nil(t, pkgerrors.WrapParse("yaml", "f", nil))

	err := pkgerrors.WrapParse("toml", "agents.toml", errors.New("expected '='"))
	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "toml", parseErr.Format)
	assert.Equal(t, "agents.toml", parseErr.File)
}
