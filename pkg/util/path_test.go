package util

import "testing"

func TestParseAddress(t *testing.T) {
	tests := []struct {
		addr     string
		wantName string
		wantWild bool
		wantErr  bool
	}{
		{"root:/a/b/c:", "a/b/c", false, false},
		{"root:/a/b/*:", "a/b", true, false},
		{"root::", "", false, false},
		{"root:/:", "", false, false},
		{"root:/*:", "", true, false},
		{"a/b/c", "a/b/c", false, false},
		{"a/b/*", "a/b", true, false},
		{"", "", false, false},
		{"root:/a/b/c", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			name, wild, err := ParseAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddress(%q) err = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if name != tt.wantName || wild != tt.wantWild {
				t.Errorf("ParseAddress(%q) = (%q, %v), want (%q, %v)", tt.addr, name, wild, tt.wantName, tt.wantWild)
			}
		})
	}
}

func TestChildDepthOK(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   bool
	}{
		{"", "F1", true},
		{"", "F1/N1", false},
		{"F1", "F1/N1", true},
		{"F1", "F1/sub/N1", false},
		{"F1", "F2/N1", false},
		{"F1", "F1", false},
	}

	for _, tt := range tests {
		if got := ChildDepthOK(tt.prefix, tt.name); got != tt.want {
			t.Errorf("ChildDepthOK(%q, %q) = %v, want %v", tt.prefix, tt.name, got, tt.want)
		}
	}
}
