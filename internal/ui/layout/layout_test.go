package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tc := range tests {
		if got := IsTooSmall(tc.w, tc.h); got != tc.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestScroll(t *testing.T) {
	s := "a\nb\nc\nd\ne"

	tests := []struct {
		offset, height int
		want           string
		wantOffset     int
	}{
		{0, 2, "a\nb", 0},
		{2, 2, "c\nd", 2},
		{10, 2, "d\ne", 3},
		{-3, 3, "a\nb\nc", 0},
		{1, 10, "a\nb\nc\nd\ne", 0},
	}
	for _, tc := range tests {
		got, off := Scroll(s, tc.offset, tc.height)
		if got != tc.want || off != tc.wantOffset {
			t.Errorf("Scroll(offset=%d, height=%d) = (%q, %d), want (%q, %d)",
				tc.offset, tc.height, got, off, tc.want, tc.wantOffset)
		}
	}
}

func TestRenderHeader_ShowsPercentage(t *testing.T) {
	out := RenderHeader("Scheda 1", 42, 80)
	if !strings.Contains(out, "42%") {
		t.Errorf("header missing percentage: %q", out)
	}
	if !strings.Contains(out, "Italienapp") {
		t.Errorf("header missing app name: %q", out)
	}
}
