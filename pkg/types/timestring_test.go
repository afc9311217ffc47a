package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid afternoon", input: "14:30", want: "14:30"},
		{name: "valid with surrounding spaces", input: " 10:00 ", want: "10:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "rolls hour boundary", start: "13:30", minutes: 60, want: "14:30"},
		{name: "rolls multiple hours", start: "09:15", minutes: 150, want: "11:45"},
		{name: "negative shift", start: "10:00", minutes: -60, want: "09:00"},
		{name: "past midnight", start: "23:30", minutes: 60, wantErr: true},
		{name: "before midnight", start: "00:30", minutes: -60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_Label12(t *testing.T) {
	assert.Equal(t, "9:00 AM", TimeString("09:00").Label12())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Label12())
	assert.Equal(t, "12:30 AM", TimeString("00:30").Label12())
	assert.Equal(t, "2:00 PM", TimeString("14:00").Label12())
	assert.Equal(t, "11:59 PM", TimeString("23:59").Label12())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	// Postgres TIME columns come back with seconds.
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("11:00:00")))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 7, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	require.Error(t, ts.Scan(42))
}
