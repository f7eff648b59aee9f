package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/lane-runner/parameter"
)

// noise emits white noise for a fixed number of samples
type noise struct {
	remaining int
	rng       *rand.Rand
}

func newNoise(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return &noise{remaining: rate.N(d), rng: rand.New(rand.NewPCG(0x6c616e65, 0x72756e))}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remaining <= 0 {
		return 0, false
	}
	count := min(len(samples), n.remaining)
	for i := 0; i < count; i++ {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	n.remaining -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// sweep is a sine whose frequency glides linearly between two points
type sweep struct {
	from, to float64
	rate     float64
	total    int
	pos      int
	phase    float64
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration) beep.Streamer {
	return &sweep{from: from, to: to, rate: float64(rate), total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		f := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += f / s.rate
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// shape applies a linear attack followed by an exponential decay
type shape struct {
	streamer beep.Streamer
	attack   int
	decay    float64 // Per-sample multiplier after attack
	gain     float64
	pos      int
}

func newShape(s beep.Streamer, rate beep.SampleRate, attack time.Duration, decayPerSecond float64) beep.Streamer {
	return &shape{
		streamer: s,
		attack:   rate.N(attack),
		decay:    math.Exp(-decayPerSecond / float64(rate)),
		gain:     1.0,
	}
}

func (s *shape) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var g float64
		if s.pos < s.attack {
			g = float64(s.pos) / float64(s.attack)
		} else {
			s.gain *= s.decay
			g = s.gain
		}
		samples[i][0] *= g
		samples[i][1] *= g
		s.pos++
	}
	return n, ok
}

func (s *shape) Err() error { return s.streamer.Err() }

// newVolume wraps s in a linear gain; Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a bounded sine or square at freq, nil when the rate cannot carry it
func tone(rate beep.SampleRate, freq float64, d time.Duration, square bool) beep.Streamer {
	var (
		s   beep.Streamer
		err error
	)
	if square {
		s, err = generators.SquareTone(rate, freq)
	} else {
		s, err = generators.SineTone(rate, freq)
	}
	if err != nil {
		return nil
	}
	return beep.Take(rate.N(d), s)
}

// CreateCrashSound is a noise burst over a low rumble, both decaying
func CreateCrashSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.CrashSoundDuration

	rumble := tone(rate, parameter.CrashSoundRumbleHz, d, false)
	if rumble == nil {
		return nil
	}
	mixed := beep.Mix(
		newVolume(newNoise(rate, d), 0.5),
		newVolume(rumble, 0.8),
	)
	shaped := newShape(mixed, rate, parameter.SoundAttack, parameter.CrashDecayRate)
	return newVolume(shaped, cfg.effectVolume(SoundCrash))
}

// CreateItemSound is a two-note rising chime
func CreateItemSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	half := parameter.ItemSoundDuration / 2

	n1 := tone(rate, parameter.ItemSoundHz, half, false)
	n2 := tone(rate, parameter.ItemSoundHz*1.5, half, false)
	if n1 == nil || n2 == nil {
		return nil
	}
	shaped := newShape(beep.Seq(n1, n2), rate, parameter.SoundAttack, 12)
	return newVolume(shaped, cfg.effectVolume(SoundItem))
}

// CreateTickSound is a short square blip for the revive countdown
func CreateTickSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	blip := tone(rate, parameter.TickSoundHz, parameter.TickSoundDuration, true)
	if blip == nil {
		return nil
	}
	shaped := newShape(blip, rate, parameter.SoundAttack, 30)
	return newVolume(shaped, cfg.effectVolume(SoundTick)*0.5)
}

// CreateRespawnSound is an upward sweep
func CreateRespawnSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	if float64(rate)/2 <= parameter.RespawnSoundEndHz {
		return nil
	}
	s := newSweep(rate, parameter.RespawnSoundStartHz, parameter.RespawnSoundEndHz, parameter.RespawnSoundDuration)
	shaped := newShape(s, rate, parameter.SoundAttack, 6)
	return newVolume(shaped, cfg.effectVolume(SoundRespawn))
}

// CreateGameOverSound is three falling notes
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.GameOverNoteDuration

	notes := make([]beep.Streamer, 0, 3)
	for _, f := range []float64{392.0, 311.13, 261.63} {
		n := tone(rate, f, d, false)
		if n == nil {
			return nil
		}
		notes = append(notes, newShape(n, rate, parameter.SoundAttack, 4))
	}
	return newVolume(beep.Seq(notes...), cfg.effectVolume(SoundGameOver))
}

// GetSoundEffect returns a fresh streamer for the given cue, nil if unknown
func GetSoundEffect(t SoundType, cfg *AudioConfig) beep.Streamer {
	switch t {
	case SoundCrash:
		return CreateCrashSound(cfg)
	case SoundItem:
		return CreateItemSound(cfg)
	case SoundTick:
		return CreateTickSound(cfg)
	case SoundRespawn:
		return CreateRespawnSound(cfg)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
