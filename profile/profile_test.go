package profile

import "testing"

func TestMake(t *testing.T) {
	p := Make(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true), nil)

	want := Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if p != want {
		t.Errorf("Make() = %+v, want %+v", p, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	for _, mode := range []string{"", "no-such-mode"} {
		s := Make(WithMode(mode)).Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("Start() with mode %q = %T, want no-op", mode, s)
		}

		s.Stop()
	}
}
