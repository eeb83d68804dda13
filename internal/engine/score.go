package engine

// Score computes the points awarded for one resolved question. Incorrect
// answers always score zero. Correct answers start from a base picked by
// the mode (time-bucketed in timed modes, flat in untimed modes) minus
// the hint penalty, floored so a correct answer is never worth less than
// the mode's floor.
//
// A submission registered at zero remaining seconds (timer-expiry
// auto-submit) scores in the slowest bucket rather than being disallowed.
func Score(mode ModeConfig, correct, usedHint bool, timeRemainingSeconds int) int {
	if !correct {
		return 0
	}

	base := mode.UntimedBase
	if mode.Timed {
		switch {
		case timeRemainingSeconds > mode.FastThreshold:
			base = mode.FastBase
		case timeRemainingSeconds > mode.MidThreshold:
			base = mode.MidBase
		default:
			base = mode.SlowBase
		}
	}

	if usedHint {
		base -= mode.HintPenalty
	}
	if base < mode.ScoreFloor {
		base = mode.ScoreFloor
	}
	return base
}

// NextStreak advances the consecutive-correct counter: +1 on a correct
// answer, reset to zero on any miss. The streak is informational only and
// never multiplies into the score.
func NextStreak(current int, correct bool) int {
	if !correct {
		return 0
	}
	return current + 1
}
