package meta

import "testing"

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern   string
		prefilter bool
		want      Strategy
	}{
		{"hello", true, UseLiteral},
		{"x", true, UseLiteral},
		{"(hello)", true, UsePrefilter},
		{"hello+", true, UsePrefilter},
		{`\d+`, true, UsePrefilter},
		{`(cat|dog) and \1`, true, UsePrefilter},
		{"^abc", true, UseAnchored},
		{"^", true, UseAnchored},
		{"a*", true, UseBacktrack},
		{".x", true, UseBacktrack},
		{"hello", false, UseBacktrack},
		{"^abc", false, UseAnchored},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			config := DefaultConfig()
			config.EnablePrefilter = tt.prefilter
			e, err := CompileWithConfig(tt.pattern, config)
			if err != nil {
				t.Fatal(err)
			}
			if got := e.Strategy(); got != tt.want {
				t.Errorf("Strategy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{UseBacktrack, "Backtrack"},
		{UseAnchored, "Anchored"},
		{UsePrefilter, "Prefilter"},
		{UseLiteral, "Literal"},
		{Strategy(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
