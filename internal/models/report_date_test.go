package models

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stamp    string
		expected civil.Date
		wantErr  bool
	}{
		{
			name:     "regular date",
			stamp:    "20170630",
			expected: civil.Date{Year: 2017, Month: 6, Day: 30},
		},
		{
			name:     "leap day",
			stamp:    "20240229",
			expected: civil.Date{Year: 2024, Month: 2, Day: 29},
		},
		{
			name:    "leap day in common year",
			stamp:   "20230229",
			wantErr: true,
		},
		{
			name:    "day out of range",
			stamp:   "20170231",
			wantErr: true,
		},
		{
			name:    "month out of range",
			stamp:   "20171301",
			wantErr: true,
		},
		{
			name:    "too short",
			stamp:   "2017063",
			wantErr: true,
		},
		{
			name:    "not digits",
			stamp:   "2017O630",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			date, err := ParseLogDate(tt.stamp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, date)
		})
	}
}

func TestReportKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		date     civil.Date
		expected string
	}{
		{
			name:     "zero padded month and day",
			date:     civil.Date{Year: 2017, Month: 6, Day: 3},
			expected: "report-2017.06.03.html",
		},
		{
			name:     "end of year",
			date:     civil.Date{Year: 2023, Month: 12, Day: 31},
			expected: "report-2023.12.31.html",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ReportKey(tt.date))
		})
	}
}

func TestParseReportKey(t *testing.T) {
	t.Parallel()

	date := civil.Date{Year: 2017, Month: 6, Day: 30}
	got, ok := ParseReportKey(ReportKey(date))
	require.True(t, ok)
	assert.Equal(t, date, got)

	for _, key := range []string{"report-2017.06.30.json", "summary-2017.06.30.html", "report-2017.13.01.html", "report-.html"} {
		_, ok := ParseReportKey(key)
		assert.False(t, ok, key)
	}
}
