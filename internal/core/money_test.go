package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseSignedCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"42", 4200, true},
		{"-12,5", -1250, true},
		{"+3.2", 320, true},
		{"0", 0, true},
		{"-", 0, false},
		{"--1", 0, false},
		{"1e3", 0, false},
		{"١٢", 0, false}, // non-ASCII digits
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSignedCents(tc.in)
			if tc.ok && (err != nil || got != tc.out) {
				t.Fatalf("expected %d, got %d (err=%v)", tc.out, got, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error, got %d", got)
			}
		})
	}
}

func TestMoneyStringRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 5, 50, 1250, -1250, -7, 123456789} {
		s := Money{Cents: cents}.String()
		back, err := ParseSignedCents(s)
		if err != nil || back != cents {
			t.Fatalf("round trip %d -> %q -> %d (err=%v)", cents, s, back, err)
		}
	}
	if got := (Money{Cents: -305}).String(); got != "-3.05" {
		t.Fatalf("unexpected format %q", got)
	}
}
