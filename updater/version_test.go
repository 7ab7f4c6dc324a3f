package updater

import "testing"

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current, latest string
		want            bool
		wantErr         bool
	}{
		{current: "1.0.0", latest: "1.0.1", want: true},
		{current: "1.0.1", latest: "1.0.0", want: false},
		{current: "1.0.0", latest: "1.0.0", want: false},
		{current: "1.9.0", latest: "1.10.0", want: true},
		{current: "v1.0.0", latest: "1.2.0", want: true},
		{current: "1.0.0-beta.1", latest: "1.0.0", want: true},
		{current: "dev", latest: "0.0.1", want: true},
		{current: "1.0.0", latest: "latest", wantErr: true},
	}

	for _, tt := range tests {
		got, err := IsNewer(tt.current, tt.latest)
		if (err != nil) != tt.wantErr {
			t.Errorf("IsNewer(%q, %q) error = %v, wantErr %v", tt.current, tt.latest, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}
