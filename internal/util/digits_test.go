package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"all arabic-indic", "٠١٢٣٤٥٦٧٨٩", "0123456789"},
		{"already latin", "+216 55 123 456", "+216 55 123 456"},
		{"mixed with formatting", "+٢١٦ (٥٥) ١٢٣-٤٥٦", "+216 (55) 123-456"},
		{"mixed scripts", "٠1٢3", "0123"},
		{"letters untouched", "ext. ٤٢ ابc", "ext. 42 ابc"},
		{"persian digits untouched", "۱۲۳", "۱۲۳"},
		{"empty", "", ""},
		{"invalid utf-8 kept", "05\xff١2", "05\xff12"},
		{"lone continuation byte kept", "\x80٣", "\x803"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDigits(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeDigits(got), "normalization must be idempotent")
			assert.False(t, HasNonLatinDigits(got))
		})
	}
}

func TestHasNonLatinDigits(t *testing.T) {
	assert.True(t, HasNonLatinDigits("05٥"))
	assert.False(t, HasNonLatinDigits("055"))
}
