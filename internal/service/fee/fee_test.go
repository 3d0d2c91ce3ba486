package fee

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   int64
	}{
		{name: "smallest amount is clamped to minimum", amount: 1, want: 1},
		{name: "fraction below one is clamped", amount: 50, want: 1},
		{name: "just below two", amount: 133, want: 1},
		{name: "exactly two", amount: 134, want: 2},
		{name: "round thousand", amount: 1000, want: 15},
		{name: "truncates toward zero", amount: 1999, want: 29},
		{name: "one bitcoin", amount: 100000000, want: 1500000},
		{name: "largest amount does not overflow", amount: math.MaxInt64, want: 138350580552821637},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.amount))
		})
	}
}

func TestCalculateMatchesFormula(t *testing.T) {
	for amount := int64(1); amount <= 10000; amount++ {
		want := amount * 15 / 1000
		if want < 1 {
			want = 1
		}
		if got := Calculate(amount); got != want {
			t.Fatalf("Calculate(%d) = %d, want %d", amount, got, want)
		}
	}
}
