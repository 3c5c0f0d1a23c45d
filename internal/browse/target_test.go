package browse

import (
	"math"
	"testing"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "25", want: 25, wantOK: true},
		{in: "  7 ", want: 7, wantOK: true},
		{in: "+3", want: 3, wantOK: true},
		{in: "12abc", want: 12, wantOK: true},
		{in: "3.9", want: 3, wantOK: true},
		{in: "0", wantOK: false},
		{in: "-5", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "", wantOK: false},
		{in: "   ", wantOK: false},
		{in: "-", wantOK: false},
		{in: "99999999999999999999999", want: math.MaxInt, wantOK: true},
		{in: "+99999999999999999999999x", want: math.MaxInt, wantOK: true},
		{in: "-99999999999999999999999", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseTarget(tt.in)
		if ok != tt.wantOK {
			t.Fatalf("ParseTarget(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}
		if ok && got != tt.want {
			t.Fatalf("ParseTarget(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
