package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := types.NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = types.NewTimeStringFromString("9:30")
	assert.Error(t, err)

	_, err = types.NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = types.NewTimeStringFromString("abc")
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := types.TimeString("09:00")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:30"), next)

	next, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), next)

	// Выход за пределы суток
	_, err = types.TimeString("23:45").AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, types.TimeString("09:00").IsBefore("17:30"))
	assert.False(t, types.TimeString("17:30").IsBefore("09:00"))
	assert.True(t, types.TimeString("17:30").IsAfter("09:00"))
	assert.False(t, types.TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts types.TimeString

	// Postgres TIME приходит строкой с секундами
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, "14:30", ts.String())

	require.NoError(t, ts.Scan([]byte("09:00:00")))
	assert.Equal(t, "09:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 6, 10, 11, 30, 0, 0, time.UTC)))
	assert.Equal(t, "11:30", ts.String())
}

func TestNullTimeString_Scan(t *testing.T) {
	var nts types.NullTimeString

	require.NoError(t, nts.Scan(nil))
	assert.False(t, nts.Valid)

	require.NoError(t, nts.Scan("10:00:00"))
	assert.True(t, nts.Valid)
	assert.Equal(t, "10:00", nts.TimeString.String())
}
