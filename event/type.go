package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved for automatic FSM transitions evaluated every update
	EventTick EventType = iota

	// === Score ===

	// EventScoreChanged fires on every score change
	// Trigger: Session on item pickup or restart
	// Consumer: Renderer, Feed | Payload: *ScoreChangedPayload
	EventScoreChanged

	// EventBestScoreChanged fires when a new best score is recorded
	// Trigger: ScoreKeeper | Consumer: Feed | Payload: *BestScorePayload
	EventBestScoreChanged

	// === Life ===

	// EventLifeChanged fires when the life count changes
	// Trigger: LifeMachine | Consumer: Renderer, Feed | Payload: *LifeChangedPayload
	EventLifeChanged

	// EventPlayerDied fires on a lethal obstacle contact
	// Trigger: Collision resolver | Consumer: Audio, LifeMachine | Payload: *PlayerDiedPayload
	EventPlayerDied

	// EventPlayerRespawned fires when the player is placed back on the road
	// Trigger: LifeMachine | Consumer: Audio, Feed | Payload: *PlayerRespawnedPayload
	EventPlayerRespawned

	// EventInvincibilityEnded fires when the post-respawn window closes
	// Trigger: Session | Consumer: Renderer | Payload: nil
	EventInvincibilityEnded

	// EventReviveOffered fires when the last life is lost and a revive can be granted
	// Trigger: LifeMachine | Consumer: Renderer, host | Payload: *ReviveOfferedPayload
	EventReviveOffered

	// EventReviveCountdownTick fires once per second of the revive countdown
	// Trigger: LifeMachine | Consumer: Audio, Renderer | Payload: *CountdownTickPayload
	EventReviveCountdownTick

	// EventRevived fires after a granted revive restores the player
	// Trigger: LifeMachine | Consumer: Feed | Payload: *LifeChangedPayload
	EventRevived

	// EventGameOver fires once per run when the run ends
	// Trigger: LifeMachine | Consumer: Meta, Audio, Feed | Payload: *GameOverPayload
	EventGameOver

	// === Spawner ===

	// EventSpawnRequest fires for each obstacle placed ahead of the player
	// Trigger: Spawner | Consumer: Renderer, Feed | Payload: *SpawnRequestPayload
	EventSpawnRequest

	// EventObstacleCulled fires when an obstacle falls behind the cull distance
	// Trigger: Spawner | Consumer: Feed | Payload: *ObstacleCulledPayload
	EventObstacleCulled

	// EventItemCollected fires when an item is consumed
	// Trigger: Collision resolver | Consumer: Audio, Feed | Payload: *ItemCollectedPayload
	EventItemCollected

	// === Session ===

	// EventPauseChanged fires when the user pause toggles
	// Trigger: Session | Consumer: Audio, Renderer | Payload: *PausePayload
	EventPauseChanged

	// EventInterstitialDue fires on game overs that hit the interstitial cadence
	// Trigger: Meta | Consumer: host | Payload: nil
	EventInterstitialDue

	// === Internal life machine triggers ===

	// EventRespawnDue fires when the seamless respawn delay elapses
	EventRespawnDue

	// EventReviveGranted fires when the host grants a revive during the countdown
	EventReviveGranted

	// EventReviveTimeout fires when the revive countdown runs out
	EventReviveTimeout

	// EventRestart fires on an explicit restart request
	EventRestart
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64 // Tick number the event was emitted in
}
