package components

import "testing"

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total int
		n     int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{80, 3},
		{7, 2},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}

	if widths := LayoutRow(100, 0); widths != nil {
		t.Errorf("LayoutRow with n=0 = %v, want nil", widths)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if idx := TabIdxByKey('p'); idx != 1 {
		t.Errorf("TabIdxByKey('p') = %d, want 1", idx)
	}
	if idx := TabIdxByKey('z'); idx != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", idx)
	}
}

func TestFormatMoneyLabel(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{500, "$500"},
		{1000, "$1k"},
		{1500, "$1.5k"},
		{2000000, "$2M"},
		{2500000, "$2.5M"},
	}
	for _, tc := range cases {
		if got := formatMoneyLabel(tc.in); got != tc.want {
			t.Errorf("formatMoneyLabel(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestChartTickStep(t *testing.T) {
	cases := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{10, 2},
		{100, 20},
		{500, 100},
		{5000, 1000},
	}
	for _, tc := range cases {
		if got := chartTickStep(tc.max); got != tc.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tc.max, got, tc.want)
		}
	}
}

func TestCardInnerWidth(t *testing.T) {
	if w := CardInnerWidth(40); w != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", w)
	}
	if w := CardInnerWidth(5); w != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want 10 (floor)", w)
	}
}
