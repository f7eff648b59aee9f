package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/lane-runner/parameter"
)

// HumGenerator is an endless engine drone whose pitch and gain follow speed
// Targets are written from the game goroutine and read on the speaker goroutine
type HumGenerator struct {
	rate  float64
	glide float64 // Per-sample approach factor toward target

	targetFreq atomic.Uint64 // float64 bits
	targetGain atomic.Uint64

	freq  float64
	gain  float64
	phase float64
}

// NewHumGenerator starts the drone at idle pitch and gain
func NewHumGenerator(rate beep.SampleRate) *HumGenerator {
	h := &HumGenerator{
		rate:  float64(rate),
		glide: 1 - math.Exp(-1/(float64(rate)*parameter.EngineGlideTime.Seconds())),
	}
	h.SetSpeed(0)
	h.freq, h.gain = h.Target()
	return h
}

// SetSpeed maps a normalized speed in [0,1] onto the idle-to-rev range
func (h *HumGenerator) SetSpeed(normalized float64) {
	n := min(max(normalized, 0), 1)
	freq := parameter.EngineIdleHz + (parameter.EngineMaxHz-parameter.EngineIdleHz)*n
	idle := parameter.EngineGain * parameter.EngineIdleGain
	gain := idle + (parameter.EngineGain-idle)*n
	h.targetFreq.Store(math.Float64bits(freq))
	h.targetGain.Store(math.Float64bits(gain))
}

// Target returns the frequency and gain the drone is gliding toward
func (h *HumGenerator) Target() (freq, gain float64) {
	return math.Float64frombits(h.targetFreq.Load()), math.Float64frombits(h.targetGain.Load())
}

func (h *HumGenerator) Stream(samples [][2]float64) (int, bool) {
	tf, tg := h.Target()
	for i := range samples {
		h.freq += (tf - h.freq) * h.glide
		h.gain += (tg - h.gain) * h.glide

		// Fundamental plus a softer second harmonic
		p := 2 * math.Pi * h.phase
		v := (math.Sin(p) + 0.35*math.Sin(2*p)) * h.gain
		samples[i][0] = v
		samples[i][1] = v

		h.phase += h.freq / h.rate
		h.phase -= math.Floor(h.phase)
	}
	return len(samples), true
}

func (h *HumGenerator) Err() error { return nil }
