package commands

import "testing"

func TestParseRef(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{"simple", []string{"1"}, 1, false},
		{"multi digit", []string{"42"}, 42, false},
		{"trailing args ignored", []string{"3", "extra"}, 3, false},
		{"missing", nil, 0, true},
		{"zero", []string{"0"}, 0, true},
		{"negative", []string{"-1"}, 0, true},
		{"non-numeric", []string{"abc"}, 0, true},
		{"mixed", []string{"1a"}, 0, true},
		{"empty string", []string{""}, 0, true},
		{"unicode digits", []string{"١٢"}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRef(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}

	if _, err := ParseRef(nil); err != ErrRefRequired {
		t.Errorf("expected ErrRefRequired, got %v", err)
	}
}
