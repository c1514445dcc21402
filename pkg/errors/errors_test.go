package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calviaapp/bizdir/pkg/errors"
)

func TestNotFoundErrorIs(t *testing.T) {
	err := errors.NewNotFoundError("category", "golf-courses")

	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, "category golf-courses not found", err.Error())
}

func TestConfigErrorUnwrap(t *testing.T) {
	cause := errors.New("missing value")
	err := errors.NewConfigError("store", "db url required", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "config error in store")
}

func TestIngestErrorFormatting(t *testing.T) {
	err := errors.NewIngestError("bundle.zip", "no readable sheets", nil)
	assert.Equal(t, "ingest error in bundle.zip: no readable sheets", err.Error())

	wrapped := errors.NewIngestError("bundle.zip", "open failed", errors.New("bad zip"))
	assert.Contains(t, wrapped.Error(), "bad zip")
}

func TestStoreErrorChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("loading snapshot: %w", errors.NewStoreError("load categories", cause))

	var storeErr *errors.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "load categories", storeErr.Operation)
	assert.True(t, errors.Is(err, cause))
}

func TestWrapResource(t *testing.T) {
	assert.NoError(t, errors.WrapResource(nil, "area", "magaluf"))

	err := errors.WrapResource(errors.ErrNotFound, "area", "magaluf")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, "area magaluf: not found", err.Error())
}
