package physics

// AABB is an axis-aligned box in world units, X across lanes and Y along the road
type AABB struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Box builds an AABB centered at (x, y) with the given half extents
func Box(x, y, halfWidth, halfLength float64) AABB {
	return AABB{
		MinX: x - halfWidth,
		MaxX: x + halfWidth,
		MinY: y - halfLength,
		MaxY: y + halfLength,
	}
}

// Overlaps reports whether two boxes intersect; touching edges do not count
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX < b.MaxX && b.MinX < a.MaxX &&
		a.MinY < b.MaxY && b.MinY < a.MaxY
}

// HitProfile defines the collision extents of the runner, obstacles and pickups
type HitProfile struct {
	PlayerHalfWidth    float64
	PlayerHalfLength   float64
	ObstacleHalfWidth  float64 // Per blocked lane, centered on the lane
	ObstacleHalfLength float64
	ItemHalfSize       float64
}

// DefaultHitProfile fits a 2.0 lane width with a visible gap between neighbouring lanes
var DefaultHitProfile = HitProfile{
	PlayerHalfWidth:    0.45,
	PlayerHalfLength:   1.0,
	ObstacleHalfWidth:  0.8,
	ObstacleHalfLength: 0.75,
	ItemHalfSize:       0.5,
}
