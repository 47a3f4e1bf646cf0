package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBucketKey(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "Meio-dia UTC cai no mesmo dia em Sao Paulo",
			instant:  time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC),
			expected: "2024-11-05",
		},
		{
			name:     "Madrugada UTC cai no dia anterior em Sao Paulo",
			instant:  time.Date(2024, 11, 5, 1, 30, 0, 0, time.UTC),
			expected: "2024-11-04",
		},
		{
			name:     "Exatamente meia-noite UTC pertence ao dia anterior local",
			instant:  time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
			expected: "2024-11-04",
		},
		{
			name:     "Timestamp em outro fuso e normalizado para o fuso de negocio",
			instant:  time.Date(2024, 11, 5, 22, 0, 0, 0, time.FixedZone("JST", 9*3600)),
			expected: "2024-11-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToBucketKey(tt.instant))
		})
	}
}

func TestToBucketKey_Deterministica(t *testing.T) {
	instant := time.Date(2025, 3, 10, 18, 45, 12, 0, time.UTC)

	first := ToBucketKey(instant)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ToBucketKey(instant))
	}
}

func TestToBucketKey_Monotonica(t *testing.T) {
	// Chaves de data preservam a ordem dos timestamps: lexicografia de
	// YYYY-MM-DD acompanha a cronologia.
	base := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)

	previous := ToBucketKey(base)
	for i := 1; i <= 96; i++ {
		current := ToBucketKey(base.Add(time.Duration(i) * time.Hour))
		assert.LessOrEqual(t, previous, current)
		previous = current
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2024-11-05")
	require.NoError(t, err)

	assert.Equal(t, "2024-11-05", ToBucketKey(start))
	assert.Equal(t, "2024-11-06", ToBucketKey(end))
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	// Instante imediatamente antes do fim ainda pertence ao dia.
	assert.Equal(t, "2024-11-05", ToBucketKey(end.Add(-time.Nanosecond)))
}

func TestDayBounds_ChaveInvalida(t *testing.T) {
	_, _, err := DayBounds("05/11/2024")
	assert.Error(t, err)
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		dateKey  string
		days     int
		expected string
	}{
		{
			name:     "Avanco simples",
			dateKey:  "2024-11-05",
			days:     1,
			expected: "2024-11-06",
		},
		{
			name:     "Retrocesso cruzando o mes",
			dateKey:  "2024-11-01",
			days:     -1,
			expected: "2024-10-31",
		},
		{
			name:     "Retrocesso cruzando o ano",
			dateKey:  "2025-01-02",
			days:     -2,
			expected: "2024-12-31",
		},
		{
			name:     "Ano bissexto",
			dateKey:  "2024-02-28",
			days:     1,
			expected: "2024-02-29",
		},
		{
			name:     "Chave invalida volta sem alteracao",
			dateKey:  "invalida",
			days:     3,
			expected: "invalida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddDays(tt.dateKey, tt.days))
		})
	}
}

func TestTodayIn(t *testing.T) {
	day := TodayIn(time.Date(2024, 11, 5, 2, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-11-04", day.DateKey)
	assert.Equal(t, 2024, day.Year)
	assert.Equal(t, time.November, day.Month)
	assert.Equal(t, 4, day.DayNum)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-11", MonthKey("2024-11-05"))
	assert.Equal(t, "curta", MonthKey("curta"))
}
