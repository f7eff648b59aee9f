package physics

// DampProfile defines critically damped smoothing parameters
// Profiles are typically pre-defined as package variables for zero allocation
type DampProfile struct {
	SmoothTime float64 // Approximate seconds to reach the target
	MaxSpeed   float64 // Velocity cap in units/sec (0 = unlimited)
	DeadZone   float64 // Snap-to-target distance (0 = no snapping)
}

// SmoothDamp moves current toward target along a critically damped spring
// Returns the new position and velocity; never overshoots the target
// dt: elapsed seconds
func SmoothDamp(current, target, velocity float64, profile *DampProfile, dt float64) (float64, float64) {
	if dt <= 0 {
		return current, velocity
	}

	smoothTime := max(profile.SmoothTime, 0.0001)
	omega := 2 / smoothTime

	// Pade approximation of exp(-omega*dt)
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	if profile.MaxSpeed > 0 {
		maxChange := profile.MaxSpeed * smoothTime
		change = max(-maxChange, min(change, maxChange))
	}
	clampedTarget := current - change

	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * decay
	output := clampedTarget + (change+temp)*decay

	// Overshoot guard
	if (target-current > 0) == (output > target) {
		output = target
		velocity = 0
	}

	if profile.DeadZone > 0 && abs(target-output) < profile.DeadZone {
		output = target
		velocity = 0
	}

	return output, velocity
}

// MoveTowards moves current toward target by at most maxDelta, never passing it
func MoveTowards(current, target, maxDelta float64) float64 {
	if maxDelta <= 0 {
		return current
	}
	if abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
