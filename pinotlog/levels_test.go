package pinotlog

import "testing"

func TestParseLevel(t *testing.T) {
	testcases := []struct {
		in  string
		out Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{" info ", LevelInfo},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"fatal", LevelFatal},
		{"off", LevelOff},
	}
	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			l, err := ParseLevel(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l != tc.out {
				t.Errorf("expected %v, got %v", tc.out, l)
			}
		})
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelOff} {
		s, err := LevelToString(l)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		back, err := ParseLevel(s)
		if err != nil || back != l {
			t.Errorf("level %v did not round trip, got %v, err %v", l, back, err)
		}
	}
	if Level(3).String() != "LEVEL(3)" {
		t.Errorf("unexpected string for unknown level: %v", Level(3).String())
	}
}
