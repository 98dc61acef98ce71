package loop

import "testing"

func TestFlagsSimulating(t *testing.T) {
	tests := []struct {
		flags Flags
		want  bool
	}{
		{Started, true},
		{Started | Paused, false},
		{Started | Paused | Cheated, true},
		{Started | Cheated, true},
		{Started | AwaitingInput, false},
		{Started | Paused | Cheated | AwaitingInput, false},
		{Started | Over | Paused, false},
		{Intro, false},
		{Started | Quit, false},
	}
	for _, tt := range tests {
		if got := tt.flags.Simulating(); got != tt.want {
			t.Errorf("%v.Simulating() = %v, want %v", tt.flags, got, tt.want)
		}
	}
}

func TestTogglePause(t *testing.T) {
	f := Started
	if !f.togglePause() || !f.IsPaused() {
		t.Fatal("pause refused while playing")
	}
	if !f.togglePause() || f.IsPaused() {
		t.Fatal("unpause refused")
	}

	for _, held := range []Flags{Started | AwaitingInput, Started | Over | Paused, Intro} {
		f := held
		if f.togglePause() || f != held {
			t.Errorf("togglePause changed %v to %v", held, f)
		}
	}
}

func TestRestart(t *testing.T) {
	f := Intro
	f.restart()
	if f != Started {
		t.Fatalf("restart from intro = %v", f)
	}

	f = Started | Over | Paused | OverChoiceShown
	f.restart()
	if f != Started {
		t.Fatalf("restart after game over = %v", f)
	}

	f = Started | Cheated
	f.restart()
	if f != Started|Paused {
		t.Fatalf("restart after cheat = %v", f)
	}
}

func TestEnterOverPauses(t *testing.T) {
	f := Started
	f.enterOver()
	if !f.IsOver() || !f.IsPaused() || f.Playing() {
		t.Fatalf("enterOver = %v", f)
	}
}

func TestFlagsString(t *testing.T) {
	if s := Flags(0).String(); s != "playing" {
		t.Fatalf("zero flags = %q", s)
	}
	if s := (Started | Paused).String(); s != "started|paused" {
		t.Fatalf("String = %q", s)
	}
}
