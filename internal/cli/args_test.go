package cli

import (
	"slices"
	"testing"

	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/store"
)

func TestParseCoord(t *testing.T) {
	xy, err := parseCoord("-3", "4")
	if err != nil || xy != (geo.Coord{X: -3, Y: 4}) {
		t.Errorf("parseCoord(-3, 4) = %v, %v", xy, err)
	}
	if _, err := parseCoord("1.5", "4"); err == nil {
		t.Error("parseCoord should reject non-integers")
	}
}

func TestParsePublicationID(t *testing.T) {
	tests := []struct {
		in      string
		want    store.PublicationID
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", 0, true},
		{"18446744073709551615", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePublicationID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parsePublicationID(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestParseYear(t *testing.T) {
	if y, err := parseYear("2024"); err != nil || y != 2024 {
		t.Errorf("parseYear(2024) = %d, %v", y, err)
	}
	if _, err := parseYear("70000"); err == nil {
		t.Error("parseYear should reject years beyond 16 bits")
	}
}

func TestJoinIDs(t *testing.T) {
	if got := joinIDs([]store.PublicationID{3, 1}); got != "3, 1" {
		t.Errorf("joinIDs = %q", got)
	}
	if got := joinIDs([]store.AffiliationID(nil)); got != "-" {
		t.Errorf("joinIDs(nil) = %q", got)
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv(envData, " a.toml, ,b.json ")
	if got := envList(envData); !slices.Equal(got, []string{"a.toml", "b.json"}) {
		t.Errorf("envList = %v", got)
	}
	t.Setenv(envAddr, "")
	if got := envOr(envAddr, "fallback"); got != "fallback" {
		t.Errorf("envOr = %q", got)
	}
}
