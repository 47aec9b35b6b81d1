package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := DatasetNotFound([]string{"data/a.csv"})
	wrapped := Wrap(base, "load dataset")

	assert.Equal(t, CodeDatasetNotFound, GetCode(wrapped))
	assert.True(t, Is(wrapped, CodeDatasetNotFound))
	assert.Contains(t, wrapped.Error(), "data/a.csv")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(io.ErrUnexpectedEOF, "read %s", "listings.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
	assert.Equal(t, "read listings.csv: unexpected EOF", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("startup: %w", InvalidInput("missing column price"))

	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.False(t, Is(err, CodeDatasetNotFound))
	assert.Equal(t, "UNKNOWN", GetCode(io.EOF))
}
