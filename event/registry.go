package event

import (
	"reflect"
	"strings"
	"sync"
)

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct, nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, "tick") {
		return EventTick, true
	}
	InitRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the wire name for an EventType
func GetEventName(et EventType) string {
	if et == EventTick {
		return "tick"
	}
	InitRegistry()
	return typeToName[et]
}

// String implements fmt.Stringer
func (et EventType) String() string {
	if name := GetEventName(et); name != "" {
		return name
	}
	return "unknown"
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry populates the registry with all game events, safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		RegisterType("score-changed", EventScoreChanged, &ScoreChangedPayload{})
		RegisterType("best-score-changed", EventBestScoreChanged, &BestScorePayload{})
		RegisterType("life-changed", EventLifeChanged, &LifeChangedPayload{})
		RegisterType("player-died", EventPlayerDied, &PlayerDiedPayload{})
		RegisterType("player-respawned", EventPlayerRespawned, &PlayerRespawnedPayload{})
		RegisterType("invincibility-ended", EventInvincibilityEnded, nil)
		RegisterType("revive-offered", EventReviveOffered, &ReviveOfferedPayload{})
		RegisterType("revive-countdown-tick", EventReviveCountdownTick, &CountdownTickPayload{})
		RegisterType("revived", EventRevived, &LifeChangedPayload{})
		RegisterType("game-over", EventGameOver, &GameOverPayload{})
		RegisterType("spawn-request", EventSpawnRequest, &SpawnRequestPayload{})
		RegisterType("obstacle-culled", EventObstacleCulled, &ObstacleCulledPayload{})
		RegisterType("item-collected", EventItemCollected, &ItemCollectedPayload{})
		RegisterType("pause-changed", EventPauseChanged, &PausePayload{})
		RegisterType("interstitial-due", EventInterstitialDue, nil)

		RegisterType("respawn-due", EventRespawnDue, nil)
		RegisterType("revive-granted", EventReviveGranted, nil)
		RegisterType("revive-timeout", EventReviveTimeout, nil)
		RegisterType("restart", EventRestart, nil)
	})
}
