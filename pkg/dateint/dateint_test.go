package dateint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{
			name: "christmas 2023",
			date: time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC),
			want: 20231225,
		},
		{
			name: "single digit month and day are zero padded",
			date: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			want: 20250105,
		},
		{
			name: "leap day",
			date: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want: 20240229,
		},
		{
			name: "time of day is ignored",
			date: time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC),
			want: 20250630,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDate(tt.date))
		})
	}
}

func TestFromDateUsesLocalCalendarFields(t *testing.T) {
	// 东京的 1 月 1 日凌晨在 UTC 还是前一年，编码必须跟随本地字段
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	d := time.Date(2025, time.January, 1, 0, 30, 0, 0, tokyo)
	assert.Equal(t, 20250101, FromDate(d))
	assert.Equal(t, 20241231, FromDate(d.UTC()))
}

func TestToDate(t *testing.T) {
	got, err := ToDate(20231225, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 25, got.Day())
	assert.Equal(t, time.UTC, got.Location())
}

func TestToDateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"negative", -20240101},
		{"three digit year", 9991231},
		{"five digit year", 100000101},
		{"month zero", 20240001},
		{"month thirteen", 20241301},
		{"day zero", 20240100},
		{"day beyond month", 20240230},
		{"feb 29 on non leap year", 20230229},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToDate(tt.n, time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// 跨闰年、年末年初逐日往返
	start := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		d := start.AddDate(0, 0, i)
		back, err := ToDate(FromDate(d), time.UTC)
		require.NoError(t, err)

		y1, m1, d1 := d.Date()
		y2, m2, d2 := back.Date()
		require.Equal(t, y1, y2)
		require.Equal(t, m1, m2)
		require.Equal(t, d1, d2)
	}
}
