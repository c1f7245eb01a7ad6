package shift

import (
	"net/http"
	"testing"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictErrorNamesStoreAndWindow(t *testing.T) {
	store := "Downtown"
	err := conflictError(5, &store, "09:00", "17:00")

	require.Error(t, err)
	assert.True(t, errors.Is(err, postgres.ErrShiftConflict))
	assert.Contains(t, err.Error(), "Downtown")
	assert.Contains(t, err.Error(), "09:00")
	assert.Contains(t, err.Error(), "17:00")

	var webErr *web.Error
	require.True(t, errors.As(err, &webErr))
	assert.Equal(t, http.StatusConflict, webErr.Status)
}

func TestConflictErrorWithoutStoreName(t *testing.T) {
	err := conflictError(5, nil, "09:00", "17:00")

	assert.True(t, errors.Is(err, postgres.ErrShiftConflict))
	assert.Contains(t, err.Error(), "unknown store")
}
