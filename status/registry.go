package status

import "sync/atomic"

// Metric keys published by the session
const (
	KeyScore          = "score"
	KeyBestScore      = "best_score"
	KeyLives          = "lives"
	KeySpeed          = "speed"
	KeyPlayerY        = "player_y"
	KeyActiveObstacle = "obstacles_active"
	KeySpawned        = "obstacles_spawned"
	KeyCulled         = "obstacles_culled"
	KeyTicks          = "ticks"
	KeyDroppedInputs  = "inputs_dropped"
	KeyFeedClients    = "feed_clients"
	KeyFeedDropped    = "feed_dropped"
	KeyPaused         = "paused"
	KeyInvincible     = "invincible"
	KeyLifeState      = "life_state"
)

// Registry is the central metrics facade
// The tick goroutine writes through cached pointers; HTTP handlers and the HUD read concurrently
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a plain map suitable for JSON encoding
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Load() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
