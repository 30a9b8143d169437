package tetris

import (
	"fmt"
	"time"
)

// statusLine is the message under the board. A flashed message replaces the
// persistent one until it expires.
type statusLine struct {
	base      string
	flashText string
	until     time.Duration
}

// set replaces the persistent message and drops any flashed one.
func (s *statusLine) set(msg string) {
	s.base = msg
	s.flashText = ""
	s.until = 0
}

// flash shows msg until now+d.
func (s *statusLine) flash(now time.Duration, msg string, d time.Duration) {
	s.flashText = msg
	s.until = now + d
}

func (s *statusLine) expire(now time.Duration) {
	if s.flashText != "" && now >= s.until {
		s.flashText = ""
	}
}

func (s *statusLine) text() string {
	if s.flashText != "" {
		return s.flashText
	}
	return s.base
}

func waveMessage(wave int) string {
	return fmt.Sprintf("WAVE %d! Speed increased!", wave)
}

func victoryMessage(left int) string {
	return fmt.Sprintf("%d points to victory!", left)
}
