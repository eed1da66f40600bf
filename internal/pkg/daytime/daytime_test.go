package daytime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	t.Run("HH:MM", func(t *testing.T) {
		got, err := ParseTime("18:30")
		require.NoError(t, err)
		assert.Equal(t, Time(18*60+30), got)
	})

	t.Run("HH:MM:SS with zero seconds", func(t *testing.T) {
		got, err := ParseTime("09:05:00")
		require.NoError(t, err)
		assert.Equal(t, Time(9*60+5), got)
	})

	t.Run("rejects nonzero seconds", func(t *testing.T) {
		_, err := ParseTime("09:05:30")
		assert.Error(t, err)
	})

	t.Run("rejects out of range", func(t *testing.T) {
		for _, s := range []string{"24:00", "12:60", "nope", "12", "-1:00"} {
			_, err := ParseTime(s)
			assert.Error(t, err, s)
		}
	})
}

func TestTimeStringAndJSON(t *testing.T) {
	tm := Time(12*60 + 45)
	assert.Equal(t, "12:45:00", tm.String())

	data, err := json.Marshal(tm)
	require.NoError(t, err)
	assert.Equal(t, `"12:45:00"`, string(data))

	var back Time
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tm, back)
}

func TestTimeScan(t *testing.T) {
	var tm Time
	require.NoError(t, tm.Scan("17:30:00"))
	assert.Equal(t, Time(17*60+30), tm)

	require.NoError(t, tm.Scan([]byte("08:00:00")))
	assert.Equal(t, Time(8*60), tm)

	require.NoError(t, tm.Scan(time.Date(2025, 1, 1, 22, 15, 0, 0, time.UTC)))
	assert.Equal(t, Time(22*60+15), tm)

	assert.Error(t, tm.Scan(42))
}

func TestAddSub(t *testing.T) {
	start := Time(10 * 60)
	assert.Equal(t, Time(10*60+30), start.Add(30))
	assert.Equal(t, 90, Time(11*60+30).Sub(start))
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WeekdayOf(monday))
	assert.Equal(t, 1, WeekdayOf(monday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, WeekdayOf(monday.AddDate(0, 0, 6)))
	assert.Equal(t, 0, WeekdayOf(monday.AddDate(0, 0, 7)))
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.FixedZone("x", 3600))
	d := DateOf(ts)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-24", FormatDate(d))

	_, err = ParseDate("24/12/2025")
	assert.Error(t, err)
}
