package core

import (
	"encoding/json"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"savings", true},
		{"investment", true},
		{"expense (necessity)", true},
		{"expense (discretionary)", true},
		{"Savings", false},
		{"rent", false},
		{"", false},
	}
	for i, tc := range cases {
		_, err := ParseCategory(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error for %q", i, tc.in)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, 7, 14)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-07-14"` {
		t.Fatalf("got %s, want \"2025-07-14\" (no time component)", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip changed date: %v != %v", back, d)
	}
}

func TestUserValidate(t *testing.T) {
	good := User{Name: "Asha", Email: "asha@example.com", Income: 15_000}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []User{
		{Name: "", Email: "a@b.c", Income: 1},
		{Name: "Asha", Email: " ", Income: 1},
		{Name: "Asha", Email: "a@b.c", Income: 0},
	}
	for i, u := range bads {
		if err := u.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
