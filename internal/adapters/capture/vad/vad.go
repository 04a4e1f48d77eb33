// Package vad segments a stream of 16-bit mono PCM into one spoken phrase
// using an energy threshold calibrated on the first part of the stream.
package vad

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	DefaultFrameDuration   = 30 * time.Millisecond
	DefaultCalibration     = 500 * time.Millisecond
	DefaultTrailingSilence = 800 * time.Millisecond
	DefaultPreRoll         = 300 * time.Millisecond
	DefaultMinEnergy       = 300
	DefaultEnergyRatio     = 1.5
)

type State int

const (
	StateCalibrating State = iota
	StateWaiting
	StateSpeaking
	StateDone
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateCalibrating:
		return "calibrating"
	case StateWaiting:
		return "waiting"
	case StateSpeaking:
		return "speaking"
	case StateDone:
		return "done"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Finished reports whether Feed will ignore further audio.
func (s State) Finished() bool {
	return s == StateDone || s == StateTimedOut
}

type Config struct {
	SampleRate      int
	FrameDuration   time.Duration
	Calibration     time.Duration
	Timeout         time.Duration
	PhraseLimit     time.Duration
	TrailingSilence time.Duration
	PreRoll         time.Duration
	MinEnergy       float64
	EnergyRatio     float64
}

func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if c.FrameDuration <= 0 {
		c.FrameDuration = DefaultFrameDuration
	}
	if c.Calibration < 0 {
		c.Calibration = 0
	}
	if c.TrailingSilence <= 0 {
		c.TrailingSilence = DefaultTrailingSilence
	}
	if c.PreRoll < 0 {
		c.PreRoll = 0
	}
	if c.MinEnergy <= 0 {
		c.MinEnergy = DefaultMinEnergy
	}
	if c.EnergyRatio <= 0 {
		c.EnergyRatio = DefaultEnergyRatio
	}

	return c
}

// Segmenter is not safe for concurrent use.
type Segmenter struct {
	cfg        Config
	frameBytes int
	pending    []byte

	state     State
	threshold float64

	calibrated    time.Duration
	calibrationE  float64
	calibrationN  int
	waited        time.Duration
	phrase        time.Duration
	trailingQuiet time.Duration

	preRoll [][]byte
	clip    []byte
}

func New(cfg Config) *Segmenter {
	cfg = cfg.withDefaults()

	samples := int(int64(cfg.SampleRate) * int64(cfg.FrameDuration) / int64(time.Second))
	if samples < 1 {
		samples = 1
	}

	s := &Segmenter{
		cfg:        cfg,
		frameBytes: samples * 2,
		state:      StateCalibrating,
		threshold:  cfg.MinEnergy,
	}
	if cfg.Calibration == 0 {
		s.state = StateWaiting
	}

	return s
}

func (s *Segmenter) State() State {
	return s.state
}

// Threshold is the energy a frame must exceed to count as speech.
func (s *Segmenter) Threshold() float64 {
	return s.threshold
}

// Clip returns the captured phrase including the pre-roll kept from just
// before speech started.
func (s *Segmenter) Clip() []byte {
	out := make([]byte, len(s.clip))
	copy(out, s.clip)
	return out
}

// Feed consumes raw PCM of any length and returns the resulting state.
func (s *Segmenter) Feed(pcm []byte) State {
	if s.state.Finished() {
		return s.state
	}

	s.pending = append(s.pending, pcm...)
	for len(s.pending) >= s.frameBytes && !s.state.Finished() {
		frame := make([]byte, s.frameBytes)
		copy(frame, s.pending[:s.frameBytes])
		s.pending = s.pending[s.frameBytes:]
		s.step(frame)
	}

	return s.state
}

func (s *Segmenter) step(frame []byte) {
	energy := Energy(frame)
	dur := s.cfg.FrameDuration

	switch s.state {
	case StateCalibrating:
		s.calibrationE += energy
		s.calibrationN++
		s.calibrated += dur
		if s.calibrated >= s.cfg.Calibration {
			ambient := s.calibrationE / float64(s.calibrationN)
			s.threshold = math.Max(s.cfg.MinEnergy, ambient*s.cfg.EnergyRatio)
			s.state = StateWaiting
		}

	case StateWaiting:
		if energy > s.threshold {
			for _, kept := range s.preRoll {
				s.clip = append(s.clip, kept...)
			}
			s.preRoll = nil
			s.clip = append(s.clip, frame...)
			s.phrase = dur
			s.state = StateSpeaking
			s.checkPhraseLimit()
			return
		}

		s.keepPreRoll(frame)
		s.waited += dur
		if s.cfg.Timeout > 0 && s.waited >= s.cfg.Timeout {
			s.state = StateTimedOut
		}

	case StateSpeaking:
		s.clip = append(s.clip, frame...)
		s.phrase += dur
		if energy > s.threshold {
			s.trailingQuiet = 0
		} else {
			s.trailingQuiet += dur
			if s.trailingQuiet >= s.cfg.TrailingSilence {
				s.state = StateDone
				return
			}
		}
		s.checkPhraseLimit()
	}
}

func (s *Segmenter) checkPhraseLimit() {
	if s.cfg.PhraseLimit > 0 && s.phrase >= s.cfg.PhraseLimit {
		s.state = StateDone
	}
}

func (s *Segmenter) keepPreRoll(frame []byte) {
	if s.cfg.PreRoll == 0 {
		return
	}

	limit := int(s.cfg.PreRoll / s.cfg.FrameDuration)
	if limit < 1 {
		limit = 1
	}

	s.preRoll = append(s.preRoll, frame)
	if len(s.preRoll) > limit {
		s.preRoll = s.preRoll[len(s.preRoll)-limit:]
	}
}

// Energy is the RMS amplitude of little-endian signed 16-bit samples.
func Energy(pcm []byte) float64 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		v := float64(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
		sum += v * v
	}

	return math.Sqrt(sum / float64(n))
}
