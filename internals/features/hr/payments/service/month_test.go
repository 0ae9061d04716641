package service

import "testing"

func TestNormalizeMonthCanonicalizes(t *testing.T) {
	cases := map[string]string{
		"march":      "March",
		"MARCH":      "March",
		"  aPril  ":  "April",
		"September":  "September",
		"december":   "December",
	}
	for in, want := range cases {
		if got := NormalizeMonth(in); got != want {
			t.Errorf("NormalizeMonth(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeMonthPassesThroughUnknown(t *testing.T) {
	for _, in := range []string{"Marchtober", "13", "", "  Mar "} {
		got := NormalizeMonth(in)
		if MonthIndex(got) != 0 {
			t.Errorf("NormalizeMonth(%q) = %q unexpectedly resolved to a month", in, got)
		}
	}
	// Unknown input is trimmed but otherwise untouched.
	if got := NormalizeMonth("  Marchtober "); got != "Marchtober" {
		t.Errorf("NormalizeMonth trimmed wrong: %q", got)
	}
}

func TestNormalizeMonthIdempotent(t *testing.T) {
	for _, in := range []string{"january", "JULY", "NotAMonth"} {
		once := NormalizeMonth(in)
		if twice := NormalizeMonth(once); twice != once {
			t.Errorf("NormalizeMonth not idempotent on %q: %q vs %q", in, once, twice)
		}
	}
}

func TestMonthIndexCalendarOrder(t *testing.T) {
	if MonthIndex("January") != 1 || MonthIndex("December") != 12 {
		t.Fatal("calendar endpoints wrong")
	}
	if MonthIndex("March") >= MonthIndex("November") {
		t.Error("March should sort before November")
	}
	if MonthIndex("march") != 0 {
		t.Error("MonthIndex must only accept canonical names")
	}
}
