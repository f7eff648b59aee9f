package parameter

import "time"

// Lane Model
const (
	// LaneCount is fixed; lane indices are -1, 0, 1
	LaneCount = 3
	LaneMin   = -1
	LaneMax   = 1

	// LaneWidth is the world X distance between adjacent lane centers
	LaneWidth = 2.0

	// LaneSmoothTime is the critically damped smoothing time constant for lane changes
	LaneSmoothTime = 100 * time.Millisecond

	// LaneSettleEpsilon below which the offset snaps onto the target lane
	LaneSettleEpsilon = 0.001

	// SwipeThreshold is the minimum horizontal swipe distance in screen units
	SwipeThreshold = 50.0

	// MaxTiltDegrees is the visual tilt while moving between lanes
	MaxTiltDegrees = 15.0

	// TiltDeadzone is the remaining distance under which the car is drawn upright
	TiltDeadzone = 0.05
)

// Oscillating movement variant
const (
	// OscillateAmplitude is the X half-range of the cos(angle) sweep
	OscillateAmplitude = 2.5

	// OscillateAngularSpeed is the angle advance in radians per game second
	OscillateAngularSpeed = 1.5
)

// Speed Model
const (
	// BaseSpeed is the starting forward speed in world units per second
	BaseSpeed = 8.0

	// MaxSpeed caps both boost and progressive base speed
	MaxSpeed = 24.0

	// AccelRate is the boost acceleration toward MaxSpeed while holding
	AccelRate = 12.0

	// DecelRate is the deceleration back toward BaseSpeed on release
	DecelRate = 18.0

	// SpeedIncreaseRate is the progressive base speed growth per game second
	SpeedIncreaseRate = 0.5
)

// Obstacle Spawner
const (
	// ObstacleSpacing is the distance between consecutive obstacles
	ObstacleSpacing = 65.0

	// SafeZoneDistance is the minimum distance of the first obstacle ahead of the start
	SafeZoneDistance = 40.0

	// SpawnDelay is the one-time warm-up before the first placement
	SpawnDelay = 1500 * time.Millisecond

	// LookaheadDistance is how far ahead of the player placements are kept
	LookaheadDistance = 130.0

	// CullDistance is how far behind the player an obstacle survives
	CullDistance = 60.0

	// CullInterval is the polling period for culling
	CullInterval = 1 * time.Second

	// HardScoreThreshold switches obstacle selection from the easy to the hard set
	HardScoreThreshold = 20

	// EasyBlockedLanes and HardBlockedLanes are the lanes closed by one obstacle row
	EasyBlockedLanes = 1
	HardBlockedLanes = 2

	// ItemChance is the probability an obstacle row carries an item in a free lane
	ItemChance = 0.6

	// SpinnerSwayAmplitude and SpinnerSwaySpeed drive the default side sway of spinner rows
	SpinnerSwayAmplitude = 1.0 // World units, half a lane
	SpinnerSwaySpeed     = 1.5 // rad/s
)

// Life / Revive
const (
	// InitialLives at run start
	InitialLives = 3

	// ReviveLives is the number of lives restored by a revive grant
	ReviveLives = 1

	// RespawnDelay is the game-time pause before a seamless respawn
	RespawnDelay = 100 * time.Millisecond

	// RespawnShift moves the player forward past the obstacle that killed it
	RespawnShift = 10.0

	// InvincibilityDuration is the post-respawn window in which obstacles are ignored
	InvincibilityDuration = 5 * time.Second

	// FlickerInterval toggles player visibility during invincibility
	FlickerInterval = 100 * time.Millisecond

	// ReviveCountdownSeconds is the real-time revive offer window, ticked once per second
	ReviveCountdownSeconds = 5

	// DeathSlideDuration is the impact slide length when death motion is "slide"
	DeathSlideDuration = 300 * time.Millisecond
)

// Meta counters
const (
	// RateThreshold is the number of finished games before the rate prompt is offered
	RateThreshold = 3

	// GamesPerInterstitial is the game-over cadence of the interstitial gate
	GamesPerInterstitial = 3
)
