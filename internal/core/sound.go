package core

// Sound is an audio cue a game asks the platform to play. Games only name
// the cue; synthesis and playback belong to the platform.
type Sound int

const (
	SoundNone Sound = iota
	SoundMove
	SoundRotate
	SoundDrop
	SoundLock
	SoundClear
	SoundHold
	SoundWave
	SoundMilestone
	SoundWin
	SoundLose
)

// String returns the cue name.
func (s Sound) String() string {
	switch s {
	case SoundMove:
		return "move"
	case SoundRotate:
		return "rotate"
	case SoundDrop:
		return "drop"
	case SoundLock:
		return "lock"
	case SoundClear:
		return "clear"
	case SoundHold:
		return "hold"
	case SoundWave:
		return "wave"
	case SoundMilestone:
		return "milestone"
	case SoundWin:
		return "win"
	case SoundLose:
		return "lose"
	default:
		return "none"
	}
}
