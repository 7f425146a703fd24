package toolchain

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestParseVersionExtractsFirstSemverToken(t *testing.T) {
	tests := []struct {
		banner string
		want   string
	}{
		{"NASM version 2.16.01 compiled on Dec 29 2022", "2.16.1"},
		{"GNU ld (GNU Binutils) 2.38", "2.38.0"},
		{"ld.lld 17.0.6", "17.0.6"},
	}
	for _, tt := range tests {
		v, err := parseVersion(tt.banner)
		if err != nil {
			t.Fatalf("parseVersion(%q): %v", tt.banner, err)
		}
		if v.String() != tt.want {
			t.Errorf("parseVersion(%q) = %s, want %s", tt.banner, v, tt.want)
		}
	}
}

func TestParseVersionNoTokenIsError(t *testing.T) {
	if _, err := parseVersion("no version information here"); err == nil {
		t.Fatal("expected an error when no semver-shaped token is present")
	}
}

func TestFindMissingToolIsError(t *testing.T) {
	if _, err := Find("lumenc-nonexistent-tool-xyz", semver.MustParse("0.0.0")); err == nil {
		t.Fatal("expected an error for a tool that is not on PATH")
	}
}
