package proc

import "testing"

func TestExcluded(t *testing.T) {
	exclusions := []string{"/usr/lib/firefox/", "kworker", "/opt/app"}

	tests := []struct {
		name   string
		sample Sample
		want   bool
	}{
		{"exe under prefix", Sample{Comm: "firefox", Exe: "/usr/lib/firefox/firefox"}, true},
		{"exact exe", Sample{Comm: "app", Exe: "/opt/app"}, true},
		{"sibling dir not matched", Sample{Comm: "app", Exe: "/opt/application/bin"}, false},
		{"comm match", Sample{Comm: "kworker"}, true},
		{"comm prefix is not a match", Sample{Comm: "kworker/0:1"}, false},
		{"unknown exe ignores paths", Sample{Comm: "firefox"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excluded(tt.sample, exclusions); got != tt.want {
				t.Errorf("Excluded(%+v) = %v, want %v", tt.sample, got, tt.want)
			}
		})
	}

	if Excluded(Sample{Comm: "x"}, []string{""}) {
		t.Error("Excluded() matched an empty exclusion")
	}
}
