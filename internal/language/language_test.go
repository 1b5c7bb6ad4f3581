package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"zh", "zh"},
		{"zho", "zh"},
		{"Chinese", "zh"},
		{"IND", "id"},
		{"xx", "xx"},
		{"nonsense", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToISO2(tc.in); got != tc.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("id"); got != "Indonesian" {
		t.Fatalf("DisplayName(id) = %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(empty) = %q", got)
	}
	if got := DisplayName("qq"); got != "QQ" {
		t.Fatalf("DisplayName(qq) = %q", got)
	}
}
