// Package reward holds the pure magnitude policies for score changes.
// The engine never computes these itself; callers resolve an amount here
// and pass it in, so activity formulas can change without touching the
// engine's gating or clamping.
package reward

import (
	"fmt"
	"time"
)

// Activity kinds the app reports.
const (
	KindAnchorSession     = "anchor-session"
	KindFlowSession       = "flow-session"
	KindMeditationSession = "meditation-session"
	KindEmotionLog        = "emotion-log"
)

const (
	anchorReward     = 5.0
	flowReward       = 10.0
	emotionLogReward = 10.0

	// MaxMeditationMinutes caps the meditation reward: one point per
	// minute, at most 30.
	MaxMeditationMinutes = 30

	// MinEmotionLogDuration is the shortest voice log that counts as a
	// valid emotional log.
	MinEmotionLogDuration = 5 * time.Second
)

// Known reports whether kind is a recognized activity kind.
func Known(kind string) bool {
	switch kind {
	case KindAnchorSession, KindFlowSession, KindMeditationSession, KindEmotionLog:
		return true
	}
	return false
}

// Kinds returns all recognized activity kinds.
func Kinds() []string {
	return []string{KindAnchorSession, KindFlowSession, KindMeditationSession, KindEmotionLog}
}

// Meditation returns one point per minute meditated, capped at
// MaxMeditationMinutes.
func Meditation(d time.Duration) float64 {
	minutes := d.Minutes()
	if minutes <= 0 {
		return 0
	}
	if minutes > MaxMeditationMinutes {
		return MaxMeditationMinutes
	}
	return minutes
}

// EmotionLog returns the emotional-log reward, or 0 for a recording too
// short to be a valid log.
func EmotionLog(d time.Duration) float64 {
	if d < MinEmotionLogDuration {
		return 0
	}
	return emotionLogReward
}

// ForKind resolves the reward magnitude for an activity completion.
// Duration only matters for duration-sensitive kinds.
func ForKind(kind string, d time.Duration) (float64, error) {
	switch kind {
	case KindAnchorSession:
		return anchorReward, nil
	case KindFlowSession:
		return flowReward, nil
	case KindMeditationSession:
		return Meditation(d), nil
	case KindEmotionLog:
		return EmotionLog(d), nil
	}
	return 0, fmt.Errorf("unknown activity kind %q", kind)
}

// UsagePenalty returns the external-impact conversion policy: points of
// penalty per minute of high-dopamine app usage. Negative readings
// convert to zero penalty.
func UsagePenalty(pointsPerMinute float64) func(deltaSeconds float64) float64 {
	return func(deltaSeconds float64) float64 {
		if deltaSeconds <= 0 || pointsPerMinute <= 0 {
			return 0
		}
		return deltaSeconds / 60 * pointsPerMinute
	}
}
