package textmatch

import "testing"

func TestContains(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{s: "Mjuka Kakor, Fika", sub: "mjuka kakor", want: true},
		{s: "KLADDKAKA", sub: "kladdkaka", want: true},
		{s: "Äppelpaj", sub: "äPPEL", want: true},
		{s: "Smörgåstårta", sub: "TÅRTA", want: true},
		{s: "Bullar", sub: "kaka", want: false},
		{s: "", sub: "kaka", want: false},
		{s: "anything", sub: "", want: true},
	}
	for _, tt := range tests {
		if got := Contains(tt.s, tt.sub); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.s, tt.sub, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	if Compare("Ångest", "ångest") != 0 {
		t.Error("Compare should ignore case")
	}
	if Compare("apa", "Bepa") >= 0 {
		t.Error("Compare(apa, Bepa) should be negative")
	}
}
