// Package config loads run tunables from defaults, an optional TOML file and the environment
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/lane-runner/parameter"
)

// ErrInvalid wraps every validation failure; callers treat it as a fatal startup error
var ErrInvalid = errors.New("invalid configuration")

// ErrNoObstacles marks a spawner without any easy obstacle kind
var ErrNoObstacles = errors.New("no obstacle kinds configured")

// EnvPrefix is prepended to every environment override key
const EnvPrefix = "LANE_RUNNER_"

// MovementMode selects the horizontal movement strategy
type MovementMode string

const (
	MovementLanes     MovementMode = "lanes"
	MovementOscillate MovementMode = "oscillate"
)

// SpeedMode selects whether base speed grows with game time
type SpeedMode string

const (
	SpeedHold        SpeedMode = "hold"
	SpeedProgressive SpeedMode = "progressive"
)

// DeathMotion selects what the car does on impact
type DeathMotion string

const (
	// DeathHalt stops all motion on impact (kinematic body)
	DeathHalt DeathMotion = "halt"
	// DeathSlide carries residual speed through a short decaying slide (dynamic body)
	DeathSlide DeathMotion = "slide"
)

// Config is the full set of run tunables
type Config struct {
	Movement MovementConfig `toml:"movement"`
	Speed    SpeedConfig    `toml:"speed"`
	Spawner  SpawnerConfig  `toml:"spawner"`
	Life     LifeConfig     `toml:"life"`
	Audio    AudioConfig    `toml:"audio"`
}

// MovementConfig covers the lane model and its oscillating variant
type MovementConfig struct {
	Mode           MovementMode  `toml:"mode"`
	LaneWidth      float64       `toml:"lane_width"`
	SmoothTime     time.Duration `toml:"smooth_time"`
	SwipeThreshold float64       `toml:"swipe_threshold"`
	Amplitude      float64       `toml:"oscillate_amplitude"`
	AngularSpeed   float64       `toml:"oscillate_angular_speed"`
	DeathMotion    DeathMotion   `toml:"death_motion"`
}

// SpeedConfig covers hold-to-boost and progressive difficulty
type SpeedConfig struct {
	Mode         SpeedMode `toml:"mode"`
	Base         float64   `toml:"base"`
	Max          float64   `toml:"max"`
	Accel        float64   `toml:"accel"`
	Decel        float64   `toml:"decel"`
	IncreaseRate float64   `toml:"increase_rate"`
}

// SpawnerConfig covers obstacle placement, difficulty tiers and culling
type SpawnerConfig struct {
	Spacing            float64       `toml:"spacing"`
	SafeZone           float64       `toml:"safe_zone"`
	Delay              time.Duration `toml:"delay"`
	Lookahead          float64       `toml:"lookahead"`
	CullDistance       float64       `toml:"cull_distance"`
	CullInterval       time.Duration `toml:"cull_interval"`
	HardScoreThreshold int           `toml:"hard_score_threshold"`
	Easy               []string      `toml:"easy"`
	Hard               []string      `toml:"hard"`
	ItemChance         float64       `toml:"item_chance"`
	FirstKind          string        `toml:"first_kind"`
	Disabled           bool          `toml:"disabled"`

	// Sway moves rows of a kind side to side, keyed by kind
	Sway map[string]SwayConfig `toml:"sway"`
}

// SwayConfig is a sinusoidal side offset: amplitude in world units, angular speed in rad/s
type SwayConfig struct {
	Amplitude    float64 `toml:"amplitude"`
	AngularSpeed float64 `toml:"angular_speed"`
}

// LifeConfig covers lives, respawn and the revive offer
type LifeConfig struct {
	InitialLives    int           `toml:"initial_lives"`
	RespawnDelay    time.Duration `toml:"respawn_delay"`
	RespawnShift    float64       `toml:"respawn_shift"`
	Invincibility   time.Duration `toml:"invincibility"`
	FlickerInterval time.Duration `toml:"flicker_interval"`
	ReviveCountdown int           `toml:"revive_countdown"`
	ReviveEnabled   bool          `toml:"revive_enabled"`
}

// AudioConfig covers the synthesized sound cues
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the configuration built from parameter constants
func Default() *Config {
	return &Config{
		Movement: MovementConfig{
			Mode:           MovementLanes,
			LaneWidth:      parameter.LaneWidth,
			SmoothTime:     parameter.LaneSmoothTime,
			SwipeThreshold: parameter.SwipeThreshold,
			Amplitude:      parameter.OscillateAmplitude,
			AngularSpeed:   parameter.OscillateAngularSpeed,
			DeathMotion:    DeathHalt,
		},
		Speed: SpeedConfig{
			Mode:         SpeedHold,
			Base:         parameter.BaseSpeed,
			Max:          parameter.MaxSpeed,
			Accel:        parameter.AccelRate,
			Decel:        parameter.DecelRate,
			IncreaseRate: parameter.SpeedIncreaseRate,
		},
		Spawner: SpawnerConfig{
			Spacing:            parameter.ObstacleSpacing,
			SafeZone:           parameter.SafeZoneDistance,
			Delay:              parameter.SpawnDelay,
			Lookahead:          parameter.LookaheadDistance,
			CullDistance:       parameter.CullDistance,
			CullInterval:       parameter.CullInterval,
			HardScoreThreshold: parameter.HardScoreThreshold,
			Easy:               []string{"cone", "barrier", "oil"},
			Hard:               []string{"truck", "gate", "spinner"},
			ItemChance:         parameter.ItemChance,
			Sway: map[string]SwayConfig{
				"spinner": {Amplitude: parameter.SpinnerSwayAmplitude, AngularSpeed: parameter.SpinnerSwaySpeed},
			},
		},
		Life: LifeConfig{
			InitialLives:    parameter.InitialLives,
			RespawnDelay:    parameter.RespawnDelay,
			RespawnShift:    parameter.RespawnShift,
			Invincibility:   parameter.InvincibilityDuration,
			FlickerInterval: parameter.FlickerInterval,
			ReviveCountdown: parameter.ReviveCountdownSeconds,
			ReviveEnabled:   true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.MasterVolume,
		},
	}
}

// Load decodes the TOML file at path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults without touching the environment
func Decode(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides selected fields from LANE_RUNNER_* variables
// Malformed values are rejected rather than silently ignored
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "MOVEMENT_MODE"); ok && v != "" {
		c.Movement.Mode = MovementMode(strings.ToLower(v))
	}
	if v, ok := lookup(EnvPrefix + "SPEED_MODE"); ok && v != "" {
		c.Speed.Mode = SpeedMode(strings.ToLower(v))
	}
	if v, ok := lookup(EnvPrefix + "DEATH_MOTION"); ok && v != "" {
		c.Movement.DeathMotion = DeathMotion(strings.ToLower(v))
	}
	if v, ok := lookup(EnvPrefix + "LIVES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sLIVES: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Life.InitialLives = n
	}
	if v, ok := lookup(EnvPrefix + "REVIVE_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sREVIVE_ENABLED: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Life.ReviveEnabled = b
	}
	if v, ok := lookup(EnvPrefix + "AUDIO_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sAUDIO_ENABLED: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Audio.Enabled = b
	}
	// Master volume 0-100 converted to 0.0-1.0
	if v, ok := lookup(EnvPrefix + "MASTER_VOLUME"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMASTER_VOLUME: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Audio.Volume = min(max(float64(n)/100.0, 0), 1)
	}
	return nil
}

// Validate reports the first invariant a run cannot start without
func (c *Config) Validate() error {
	switch c.Movement.Mode {
	case MovementLanes, MovementOscillate:
	default:
		return fmt.Errorf("%w: movement mode %q", ErrInvalid, c.Movement.Mode)
	}
	switch c.Movement.DeathMotion {
	case DeathHalt, DeathSlide:
	default:
		return fmt.Errorf("%w: death motion %q", ErrInvalid, c.Movement.DeathMotion)
	}
	switch c.Speed.Mode {
	case SpeedHold, SpeedProgressive:
	default:
		return fmt.Errorf("%w: speed mode %q", ErrInvalid, c.Speed.Mode)
	}

	if c.Movement.LaneWidth <= 0 {
		return fmt.Errorf("%w: lane width must be positive", ErrInvalid)
	}
	if c.Movement.SmoothTime <= 0 {
		return fmt.Errorf("%w: smooth time must be positive", ErrInvalid)
	}
	if c.Speed.Base <= 0 || c.Speed.Max < c.Speed.Base {
		return fmt.Errorf("%w: speed range [%v, %v]", ErrInvalid, c.Speed.Base, c.Speed.Max)
	}
	if c.Speed.Accel <= 0 || c.Speed.Decel <= 0 {
		return fmt.Errorf("%w: accel and decel must be positive", ErrInvalid)
	}

	if c.Spawner.Spacing <= 0 {
		return fmt.Errorf("%w: spawner spacing must be positive", ErrInvalid)
	}
	if c.Spawner.SafeZone < 0 || c.Spawner.Delay < 0 {
		return fmt.Errorf("%w: spawner safe zone and delay must not be negative", ErrInvalid)
	}
	if c.Spawner.CullInterval <= 0 || c.Spawner.CullDistance <= 0 {
		return fmt.Errorf("%w: cull interval and distance must be positive", ErrInvalid)
	}
	if c.Spawner.ItemChance < 0 || c.Spawner.ItemChance > 1 {
		return fmt.Errorf("%w: item chance %v outside [0, 1]", ErrInvalid, c.Spawner.ItemChance)
	}
	if len(c.Spawner.Easy) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, ErrNoObstacles)
	}
	for kind, sw := range c.Spawner.Sway {
		if sw.Amplitude < 0 || math.IsNaN(sw.Amplitude) || math.IsNaN(sw.AngularSpeed) {
			return fmt.Errorf("%w: sway for %q", ErrInvalid, kind)
		}
	}

	if c.Life.InitialLives < 1 {
		return fmt.Errorf("%w: initial lives must be at least 1", ErrInvalid)
	}
	if c.Life.Invincibility < 0 || c.Life.RespawnDelay < 0 {
		return fmt.Errorf("%w: life timers must not be negative", ErrInvalid)
	}
	if c.Life.FlickerInterval <= 0 {
		return fmt.Errorf("%w: flicker interval must be positive", ErrInvalid)
	}
	if c.Life.ReviveCountdown < 1 {
		return fmt.Errorf("%w: revive countdown must be at least 1 second", ErrInvalid)
	}
	return nil
}
