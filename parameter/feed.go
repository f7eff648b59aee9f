package parameter

import "time"

// Spectator Feed
const (
	// FeedSendBuffer is the per-client queue; a client this far behind is dropped
	FeedSendBuffer = 64

	FeedWriteWait  = 10 * time.Second
	FeedPongWait   = 60 * time.Second
	FeedPingPeriod = 25 * time.Second

	// FeedReadLimit caps inbound frames; the feed is read-only
	FeedReadLimit = 512
)
