package eds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("12-30-2018")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2018, Month: time.December, Day: 30}, d)

	d, err = ParseDate("08-06-2012")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2012, Month: time.August, Day: 6}, d)

	d, err = ParseDate("10-10-0000")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 0, Month: time.October, Day: 10}, d)

	for _, bad := range []string{
		"13-30-2018",
		"12-32-2018",
		"00-10-2018",
		"10-00-2018",
		"1-10-2018",
		"10/10/2018",
		"10-10-18",
		"x10-10-2018",
		"10-10-2018x",
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"09:05PM", TimeOfDay{Hour: 21, Minute: 5}},
		{"12:22AM", TimeOfDay{Hour: 0, Minute: 22}},
		{"12:22PM", TimeOfDay{Hour: 12, Minute: 22}},
		{"01:00AM", TimeOfDay{Hour: 1, Minute: 0}},
		{"04:09PM", TimeOfDay{Hour: 16, Minute: 9}},
		{"11:59 PM", TimeOfDay{Hour: 23, Minute: 59}},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"13:22PM", "00:10AM", "10:60AM", "10:10", "10:10XM", "9:05PM", "10:10am"} {
		_, err := ParseTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestCombineDateTime(t *testing.T) {
	ts, err := CombineDateTime(Date{Year: 2012, Month: time.August, Day: 6}, TimeOfDay{Hour: 16, Minute: 9})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2012, 8, 6, 16, 9, 0, 0, time.UTC), ts)

	_, err = CombineDateTime(Date{Year: 2019, Month: time.February, Day: 30}, TimeOfDay{})
	assert.Error(t, err)

	_, err = CombineDateTime(Date{Year: 2020, Month: time.February, Day: 29}, TimeOfDay{})
	assert.NoError(t, err, "leap day")
}
