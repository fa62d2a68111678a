package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2026-10-15", want: Date{2026, time.October, 15}},
		{in: "2026-10-15T23:30:00Z", want: Date{2026, time.October, 15}},
		{in: "2026-10-15T01:00:00+03:00", want: Date{2026, time.October, 15}},
		{in: "15/10/2026", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrInvalidDate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2026, time.January, 31)
	assert.Equal(t, Date{2026, time.February, 1}, d.AddDays(1))
	assert.Equal(t, Date{2025, time.December, 31}, NewDate(2026, time.January, 0))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.Equal(t, time.Saturday, d.Weekday())
	assert.Equal(t, "2026-01-31", d.String())
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 3, 8, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, DateOf(morning), DateOf(evening))
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D Date `json:"d"`
		Z Date `json:"z"`
	}{D: NewDate(2026, 10, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2026-10-01","z":null}`, string(b))

	var out struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2026-12-24"}`), &out))
	assert.Equal(t, NewDate(2026, 12, 24), out.D)

	require.Error(t, json.Unmarshal([]byte(`{"d":42}`), &out))
}

func TestDate_SQL(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2026, 5, 4), d)

	require.NoError(t, d.Scan([]byte("2026-05-05")))
	assert.Equal(t, NewDate(2026, 5, 5), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	require.Error(t, d.Scan(42))

	v, err := NewDate(2026, 5, 6).Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-05-06", v)
}
