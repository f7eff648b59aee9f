package event

// ScoreChangedPayload carries the current score and best
type ScoreChangedPayload struct {
	Score int `json:"score"`
	Best  int `json:"best"`
}

// BestScorePayload carries a newly persisted best score
type BestScorePayload struct {
	Best int `json:"best"`
}

// LifeChangedPayload carries the remaining life count
type LifeChangedPayload struct {
	Lives int `json:"lives"`
}

// PlayerDiedPayload describes a death
type PlayerDiedPayload struct {
	Y     float64 `json:"y"`
	Lives int     `json:"lives"` // Lives left after the decrement
}

// PlayerRespawnedPayload describes the respawn placement
type PlayerRespawnedPayload struct {
	Y    float64 `json:"y"`
	Lane int     `json:"lane"`
}

// ReviveOfferedPayload carries the countdown length
type ReviveOfferedPayload struct {
	Seconds int `json:"seconds"`
}

// CountdownTickPayload carries the seconds left in the revive countdown
type CountdownTickPayload struct {
	Remaining int `json:"remaining"`
}

// GameOverPayload carries the final result of a run
type GameOverPayload struct {
	Score int `json:"score"`
	Best  int `json:"best"`
}

// SpawnRequestPayload describes a placed obstacle
type SpawnRequestPayload struct {
	ID       uint64  `json:"id"`
	Tier     string  `json:"tier"`
	Kind     string  `json:"kind"`
	Y        float64 `json:"y"`
	Blocked  []int   `json:"blocked"`
	ItemLane int     `json:"item_lane"`
	HasItem  bool    `json:"has_item"`
}

// ObstacleCulledPayload identifies a removed obstacle
type ObstacleCulledPayload struct {
	ID uint64 `json:"id"`
}

// ItemCollectedPayload identifies a consumed item
type ItemCollectedPayload struct {
	ID    uint64 `json:"id"`
	Score int    `json:"score"`
}

// PausePayload carries the user pause state
type PausePayload struct {
	Paused bool `json:"paused"`
}
