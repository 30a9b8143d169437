// Package audio synthesizes the game's sound cues with beep and pipes them
// as raw PCM to whatever command-line player the system has.
package audio

import (
	"errors"
	"time"

	"github.com/gopxl/beep"
)

const (
	// SampleRate is the output rate every backend is configured for.
	SampleRate = beep.SampleRate(44100)
	// bufferDuration is the amount of audio written per mixer tick.
	bufferDuration = 20 * time.Millisecond
	// bytesPerFrame is one stereo s16le frame.
	bytesPerFrame = 4
)

// BackendType identifies the audio backend.
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a command-line player reading s16le stereo on stdin.
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

var (
	ErrNoAudioBackend = errors.New("audio: no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio: pipe closed")
)
