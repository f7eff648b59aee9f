// Package prefs persists small player settings and counters as integer key/value pairs
package prefs

// Persisted keys
const (
	KeyBestScore            = "BestScore"
	KeyIsSoundOn            = "IsSoundOn"
	KeyGamesPlayedForRating = "GamesPlayedForRating"
	KeyHasClickedRateUs     = "HasClickedRateUs"
	KeyGameOverCount        = "GameOverCount"
)

// Store is a typed get-with-default, write-through key/value store
// Booleans are stored as 0/1 integers
type Store interface {
	GetInt(key string, def int) int
	SetInt(key string, v int) error
	GetBool(key string, def bool) bool
	SetBool(key string, v bool) error
	Close() error
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
