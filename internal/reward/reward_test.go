package reward

import (
	"testing"
	"time"
)

func TestMeditationCap(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want float64
	}{
		{0, 0},
		{-5 * time.Minute, 0},
		{10 * time.Minute, 10},
		{30 * time.Minute, 30},
		{90 * time.Minute, 30},
	}
	for _, c := range cases {
		if got := Meditation(c.d); got != c.want {
			t.Errorf("Meditation(%v) = %f, want %f", c.d, got, c.want)
		}
	}
}

func TestEmotionLogValidity(t *testing.T) {
	if got := EmotionLog(2 * time.Second); got != 0 {
		t.Errorf("short log reward = %f, want 0", got)
	}
	if got := EmotionLog(45 * time.Second); got != emotionLogReward {
		t.Errorf("valid log reward = %f, want %f", got, emotionLogReward)
	}
}

func TestForKindUnknown(t *testing.T) {
	if _, err := ForKind("doomscrolling", 0); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestForKindKnown(t *testing.T) {
	for _, kind := range Kinds() {
		if !Known(kind) {
			t.Errorf("Known(%q) = false", kind)
		}
		if _, err := ForKind(kind, time.Minute); err != nil {
			t.Errorf("ForKind(%q): %v", kind, err)
		}
	}
}

func TestUsagePenalty(t *testing.T) {
	penalty := UsagePenalty(2) // 2 points per minute

	if got := penalty(300); got != 10 {
		t.Errorf("penalty(300s) = %f, want 10", got)
	}
	if got := penalty(0); got != 0 {
		t.Errorf("penalty(0) = %f, want 0", got)
	}
	if got := penalty(-60); got != 0 {
		t.Errorf("penalty(-60) = %f, want 0", got)
	}
}
