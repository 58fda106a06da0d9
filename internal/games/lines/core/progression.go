package core

// Progression maps cumulative score to level and clearing threshold.
type Progression struct {
	BaseThreshold  int // Threshold at level 1
	LevelScoreStep int // Score needed per level
}

// DefaultProgression returns the standard progression: threshold 6, a level
// every 1000 points.
func DefaultProgression() Progression {
	return Progression{
		BaseThreshold:  6,
		LevelScoreStep: 1000,
	}
}

// DeriveLevel returns the level and threshold for a score.
//
//	level     = 1 + score / LevelScoreStep
//	threshold = BaseThreshold + level - 1
func DeriveLevel(score int, prog Progression) (level, threshold int) {
	if score < 0 {
		score = 0
	}
	step := prog.LevelScoreStep
	if step <= 0 {
		step = 1
	}
	level = 1 + score/step
	threshold = prog.BaseThreshold + level - 1
	return level, threshold
}

// LevelChange reports a level-up.
type LevelChange struct {
	From      int
	Level     int
	Threshold int
}

// LevelTracker raises one notification per new level reached.
type LevelTracker struct {
	prog         Progression
	level        int
	threshold    int
	lastNotified int
}

// NewLevelTracker creates a tracker at level 1.
func NewLevelTracker(prog Progression) *LevelTracker {
	t := &LevelTracker{prog: prog}
	t.Reset()
	return t
}

// Reset returns the tracker to level 1.
func (t *LevelTracker) Reset() {
	t.level, t.threshold = DeriveLevel(0, t.prog)
	t.lastNotified = t.level
}

// Level returns the current level.
func (t *LevelTracker) Level() int {
	return t.level
}

// Threshold returns the current clearing threshold.
func (t *LevelTracker) Threshold() int {
	return t.threshold
}

// Peek returns what Observe would report for score without recording it.
func (t *LevelTracker) Peek(score int) (LevelChange, bool) {
	level, threshold := DeriveLevel(score, t.prog)
	if level <= t.lastNotified {
		return LevelChange{}, false
	}
	return LevelChange{From: t.level, Level: level, Threshold: threshold}, true
}

// Observe updates the tracker from a new cumulative score. It reports a
// change only when the level exceeds every level already notified; a jump
// across several levels is reported once, with the highest level.
func (t *LevelTracker) Observe(score int) (LevelChange, bool) {
	change, ok := t.Peek(score)
	level, threshold := DeriveLevel(score, t.prog)
	if level > t.level {
		t.level = level
		t.threshold = threshold
	}
	if ok {
		t.lastNotified = change.Level
	}
	return change, ok
}
