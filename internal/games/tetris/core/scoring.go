package core

// resolveClears removes completed rows after a lock and applies scoring,
// combo, milestone, wave and win rules in that order.
func (s *Sim) resolveClears() {
	n := s.board.ClearCompletedRows()
	if n == 0 {
		s.expireCombo()
		return
	}

	s.lines += n
	if s.combo > 0 && s.hasCleared && s.sinceLastClear() < s.rules.ComboWindow {
		s.combo++
	} else {
		s.combo = 1
	}
	s.lastClear = s.clock
	s.hasCleared = true

	points := s.rules.PointsFor(n)
	if s.combo > 1 {
		points += s.rules.ComboBonus
	}
	s.score += points
	s.emit(LinesClearedEvent{Count: n, Combo: s.combo, Points: points})

	s.checkMilestones()
	s.checkWave()
	s.checkWin()
}

func (s *Sim) checkMilestones() {
	for i, threshold := range s.rules.Milestones {
		if s.milestones[i] || s.score < threshold {
			continue
		}
		s.milestones[i] = true
		s.emit(MilestoneEvent{Threshold: threshold, Score: s.score})
	}
}

func (s *Sim) checkWave() {
	wave := s.rules.WaveFor(s.lines)
	if wave <= s.wave {
		return
	}
	s.wave = wave
	s.interval = s.rules.IntervalFor(wave)
	s.emit(WaveIncreasedEvent{Wave: s.wave, Interval: s.interval})
}

// checkWin stops the run the first time the target is reached.
func (s *Sim) checkWin() {
	if s.reachedTarget || s.rules.TargetScore <= 0 || s.score < s.rules.TargetScore {
		return
	}
	s.reachedTarget = true
	s.running = false
	s.won = true
	s.emit(WinEvent{Score: s.score})
}
