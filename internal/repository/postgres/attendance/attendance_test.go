package attendance

import (
	"net/http"
	"testing"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatp(v float64) *float64 { return &v }
func intp(v int) *int           { return &v }

func testStore() entity.Store {
	return entity.Store{Latitude: floatp(31.9539), Longitude: floatp(35.9106)}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var webErr *web.Error
	require.True(t, errors.As(err, &webErr))
	assert.Equal(t, status, webErr.Status)
}

func TestCheckGeofenceRejectsOutsideDefaultRadius(t *testing.T) {
	r := Repository{rules: config.DefaultRules()}

	// about 13m away with the 10m default radius
	err := r.checkGeofence(31.9540, 35.9107, testStore())
	require.Error(t, err)
	assert.True(t, errors.Is(err, postgres.ErrOutsideGeofence))
	assert.Contains(t, err.Error(), "radius")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCheckGeofenceAcceptsInsideRadius(t *testing.T) {
	r := Repository{rules: config.DefaultRules()}

	assert.NoError(t, r.checkGeofence(31.9539, 35.9106, testStore()))
}

func TestCheckGeofenceUsesStoreRadius(t *testing.T) {
	r := Repository{rules: config.DefaultRules()}

	store := testStore()
	store.Radius = floatp(50)
	assert.NoError(t, r.checkGeofence(31.9540, 35.9107, store))
}

func TestClockOutGuardOwnership(t *testing.T) {
	record := entity.Attendance{EmployeeID: intp(7), Status: strPtr(entity.StatusClockedIn)}

	assert.NoError(t, clockOutGuard(record, 7))

	err := clockOutGuard(record, 8)
	require.Error(t, err)
	requireStatus(t, err, http.StatusForbidden)
}

func TestClockOutGuardAlreadyClockedOut(t *testing.T) {
	record := entity.Attendance{EmployeeID: intp(7), Status: strPtr(entity.StatusClockedOut)}

	err := clockOutGuard(record, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, postgres.ErrAlreadyClockedOut))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestClockOutGuardNoShowRecord(t *testing.T) {
	record := entity.Attendance{EmployeeID: intp(7), Status: strPtr(entity.StatusNoShow)}

	err := clockOutGuard(record, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, postgres.ErrNotClockedIn))
	requireStatus(t, err, http.StatusBadRequest)
}
