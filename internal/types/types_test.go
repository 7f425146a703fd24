package types

import "testing"

func TestCompatibleWith(t *testing.T) {
	tests := []struct {
		actual, expected Info
		want             bool
	}{
		{Info{Tag: INT}, Info{Tag: FLOAT}, true},
		{Info{Tag: FLOAT}, Info{Tag: INT}, false},
		{Info{Tag: CHAR}, Info{Tag: STRING}, true},
		{Info{Tag: STRING}, Info{Tag: CHAR}, false},
		{Info{Tag: ANY}, Info{Tag: BOOL}, true},
		{Info{Tag: BOOL}, Info{Tag: ANY}, true},
		{Info{Tag: BOOL}, Info{Tag: BOOL}, true},
		{Info{Tag: INT}, Info{Tag: STRING}, false},
	}

	for _, tt := range tests {
		got := CompatibleWith(tt.actual, tt.expected)
		if got != tt.want {
			t.Errorf("CompatibleWith(%s, %s) = %v, want %v", tt.actual, tt.expected, got, tt.want)
		}
	}
}
