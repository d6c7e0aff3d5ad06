package metadata

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{nil, false},
		{"YES", true},
		{"no", false},
		{"Y", true},
		{[]byte("t"), true},
		{int64(1), true},
		{uint8(0), false},
		{"1", true},
		{"0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, record{"v": tt.in}.bool("v"), "%#v", tt.in)
	}
}

func TestRecordInt64(t *testing.T) {
	tests := []struct {
		in   any
		want int64
	}{
		{nil, 0},
		{int32(7), 7},
		{uint64(42), 42},
		{float64(3.9), 3},
		{"128", 128},
		{[]byte("256"), 256},
		{"1.5E+3", 1500},
		{"n/a", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, record{"v": tt.in}.int64("v"), "%#v", tt.in)
	}
}

func TestRecordTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, &ts, record{"v": ts}.time("v"))
	assert.Nil(t, record{"v": nil}.time("v"))
	assert.Nil(t, record{"v": time.Time{}}.time("v"))
	assert.Equal(t, &ts, record{"v": "2024-03-01 12:30:00"}.time("v"))
	assert.Equal(t, &ts, record{"v": []byte("2024-03-01T12:30:00Z")}.time("v"))
	assert.Nil(t, record{"v": "garbage"}.time("v"))
}

func TestRecordDecimal(t *testing.T) {
	assert.False(t, record{"v": nil}.decimal("v").Valid)
	assert.Equal(t, "-5", record{"v": int64(-5)}.decimal("v").Decimal.String())
	assert.Equal(t, "18446744073709551615", record{"v": uint64(18446744073709551615)}.decimal("v").Decimal.String())
	assert.Equal(t, "12.50", record{"v": []byte("12.50")}.decimal("v").Decimal.StringFixed(2))
	assert.True(t, record{"v": decimal.NewFromInt(3)}.decimal("v").Valid)
	assert.False(t, record{"v": "abc"}.decimal("v").Valid)
}

func TestRecordStr(t *testing.T) {
	assert.Equal(t, "", record{}.str("missing"))
	assert.Nil(t, record{"v": nil}.strPtr("v"))
	assert.Equal(t, "x", *record{"v": []byte("x")}.strPtr("v"))
	assert.Equal(t, "42", record{"v": int64(42)}.str("v"))
}
