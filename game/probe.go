package game

import (
	"github.com/lixenwraith/lane-runner/physics"
)

// ContactSource reports new overlaps between the runner and the road contents each tick
type ContactSource interface {
	Contacts(x, y float64, obstacles []*Obstacle) []Contact
	Reset()
}

// LaneProbe is the built-in ContactSource
// Overlaps are edge-triggered: a contact is reported once when it begins
type LaneProbe struct {
	profile   physics.HitProfile
	laneWidth float64

	touching map[Contact]bool
	seen     map[Contact]bool
	out      []Contact
}

func NewLaneProbe(profile physics.HitProfile, laneWidth float64) *LaneProbe {
	return &LaneProbe{
		profile:   profile,
		laneWidth: laneWidth,
		touching:  make(map[Contact]bool),
		seen:      make(map[Contact]bool),
	}
}

func (p *LaneProbe) Contacts(x, y float64, obstacles []*Obstacle) []Contact {
	runner := physics.Box(x, y, p.profile.PlayerHalfWidth, p.profile.PlayerHalfLength)

	p.out = p.out[:0]
	clear(p.seen)

	for _, ob := range obstacles {
		// Rows are ordered by Y; nothing further ahead can touch
		if ob.Y-p.profile.ObstacleHalfLength > runner.MaxY {
			break
		}
		if ob.Y+p.profile.ObstacleHalfLength < runner.MinY {
			continue
		}

		for _, lane := range ob.Blocked {
			box := physics.Box(ob.LaneX(lane, p.laneWidth), ob.Y, p.profile.ObstacleHalfWidth, p.profile.ObstacleHalfLength)
			if runner.Overlaps(box) {
				p.mark(Contact{Kind: ContactObstacle, ID: ob.ID})
				break
			}
		}

		if ob.HasItem && !ob.ItemTaken {
			box := physics.Box(ob.LaneX(ob.ItemLane, p.laneWidth), ob.Y, p.profile.ItemHalfSize, p.profile.ItemHalfSize)
			if runner.Overlaps(box) {
				p.mark(Contact{Kind: ContactItem, ID: ob.ID})
			}
		}
	}

	for c := range p.touching {
		if !p.seen[c] {
			delete(p.touching, c)
		}
	}
	return p.out
}

func (p *LaneProbe) mark(c Contact) {
	p.seen[c] = true
	if !p.touching[c] {
		p.touching[c] = true
		p.out = append(p.out, c)
	}
}

func (p *LaneProbe) Reset() {
	clear(p.touching)
	clear(p.seen)
	p.out = p.out[:0]
}
