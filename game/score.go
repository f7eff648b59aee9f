package game

import (
	"errors"
	"log"

	"github.com/lixenwraith/lane-runner/prefs"
)

// ErrNoStore is returned when a persistence-backed component is built without a store
var ErrNoStore = errors.New("no preference store")

// ScoreKeeper holds the run score and the persisted best
// Best never decreases and is written through on every increase
type ScoreKeeper struct {
	store   prefs.Store
	current int
	best    int
}

func NewScoreKeeper(store prefs.Store) (*ScoreKeeper, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	return &ScoreKeeper{
		store: store,
		best:  store.GetInt(prefs.KeyBestScore, 0),
	}, nil
}

// Increment adds one point and reports whether the best moved
// A failed write keeps the new best in memory
func (k *ScoreKeeper) Increment() (newBest bool) {
	k.current++
	if k.current <= k.best {
		return false
	}
	k.best = k.current
	if err := k.store.SetInt(prefs.KeyBestScore, k.best); err != nil {
		log.Printf("score: persist best %d: %v", k.best, err)
	}
	return true
}

// Reset clears the run score, the best is kept
func (k *ScoreKeeper) Reset() {
	k.current = 0
}

func (k *ScoreKeeper) Current() int { return k.current }
func (k *ScoreKeeper) Best() int    { return k.best }
