package game

import (
	"log"

	"github.com/lixenwraith/lane-runner/parameter"
	"github.com/lixenwraith/lane-runner/prefs"
)

// Meta tracks cross-run counters: rate prompt eligibility, interstitial cadence and the sound toggle
type Meta struct {
	store prefs.Store
}

func NewMeta(store prefs.Store) (*Meta, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	return &Meta{store: store}, nil
}

// RecordGameOver bumps the per-run counters
// Returns true when this game over hits the interstitial cadence; the counter then restarts
func (m *Meta) RecordGameOver() (interstitial bool) {
	played := m.store.GetInt(prefs.KeyGamesPlayedForRating, 0) + 1
	m.set(prefs.KeyGamesPlayedForRating, played)

	count := m.store.GetInt(prefs.KeyGameOverCount, 0) + 1
	if count >= parameter.GamesPerInterstitial {
		m.set(prefs.KeyGameOverCount, 0)
		return true
	}
	m.set(prefs.KeyGameOverCount, count)
	return false
}

// ShouldShowRateUs is true once enough games were played and the player has not rated yet
func (m *Meta) ShouldShowRateUs() bool {
	if m.store.GetBool(prefs.KeyHasClickedRateUs, false) {
		return false
	}
	return m.store.GetInt(prefs.KeyGamesPlayedForRating, 0) >= parameter.RateThreshold
}

// MarkRated suppresses the rate prompt permanently
func (m *Meta) MarkRated() {
	if err := m.store.SetBool(prefs.KeyHasClickedRateUs, true); err != nil {
		log.Printf("meta: persist rated flag: %v", err)
	}
}

func (m *Meta) GamesPlayed() int {
	return m.store.GetInt(prefs.KeyGamesPlayedForRating, 0)
}

// SoundOn defaults to on when never set
func (m *Meta) SoundOn() bool {
	return m.store.GetBool(prefs.KeyIsSoundOn, true)
}

func (m *Meta) SetSoundOn(on bool) {
	if err := m.store.SetBool(prefs.KeyIsSoundOn, on); err != nil {
		log.Printf("meta: persist sound flag: %v", err)
	}
}

func (m *Meta) set(key string, v int) {
	if err := m.store.SetInt(key, v); err != nil {
		log.Printf("meta: persist %s: %v", key, err)
	}
}
