package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToEthiopian(t *testing.T) {
	tests := []struct {
		name      string
		gregorian time.Time
		expected  EthiopianDate
	}{
		{
			name:      "Ethiopian new year 2017",
			gregorian: time.Date(2024, time.September, 11, 0, 0, 0, 0, time.UTC),
			expected:  EthiopianDate{Year: 2017, Month: 1, Day: 1},
		},
		{
			name:      "last day of Pagume 2016",
			gregorian: time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC),
			expected:  EthiopianDate{Year: 2016, Month: 13, Day: 5},
		},
		{
			name:      "leap year Pagume has six days",
			gregorian: time.Date(2023, time.September, 11, 0, 0, 0, 0, time.UTC),
			expected:  EthiopianDate{Year: 2015, Month: 13, Day: 6},
		},
		{
			name:      "new year after leap year shifts to September 12",
			gregorian: time.Date(2023, time.September, 12, 0, 0, 0, 0, time.UTC),
			expected:  EthiopianDate{Year: 2016, Month: 1, Day: 1},
		},
		{
			name:      "mid-year date",
			gregorian: time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC),
			expected:  EthiopianDate{Year: 2017, Month: 4, Day: 29},
		},
		{
			name:      "end of Meskerem",
			gregorian: time.Date(2024, time.October, 10, 0, 0, 0, 0, time.UTC),
			expected:  EthiopianDate{Year: 2017, Month: 1, Day: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToEthiopian(tt.gregorian))
		})
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "መስከረም", EthiopianDate{Year: 2017, Month: 1, Day: 1}.MonthName())
	assert.Equal(t, "ጳጉሜ", EthiopianDate{Year: 2016, Month: 13, Day: 5}.MonthName())
	assert.Equal(t, "", EthiopianDate{Month: 0}.MonthName())
	assert.Equal(t, "", EthiopianDate{Month: 14}.MonthName())
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 1, MonthIndex("መስከረም"))
	assert.Equal(t, 13, MonthIndex("ጳጉሜ"))
	assert.Equal(t, -1, MonthIndex("January"))
	assert.Equal(t, -1, MonthIndex(""))
}

func TestMonthRoundTrip(t *testing.T) {
	for i := 1; i < len(EthiopianMonths); i++ {
		assert.Equal(t, i, MonthIndex(EthiopianMonths[i]))
	}
}
