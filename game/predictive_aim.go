package game

import "math"

// SolveIntercept finds the point where a projectile fired now from
// shooterPos at projectileSpeed meets a target moving in a straight line.
//
// The target's future position is targetPos + targetVel*t and the projectile
// covers projectileSpeed*t, which expands to a t² + b t + c = 0 with
//
//	a = |targetVel|² - projectileSpeed²
//	b = 2 targetVel·(targetPos - shooterPos)
//	c = |targetPos - shooterPos|²
//
// The smallest non-negative root is used. ok is false when the target cannot
// be reached (negative discriminant, no future root), when a is zero, or when
// the result is not finite. All inputs are projected to the gameplay plane.
func SolveIntercept(targetPos, targetVel, shooterPos Vec3, projectileSpeed float64) (Vec3, bool) {
	targetPos = ProjectToPlane(targetPos)
	targetVel = ProjectToPlane(targetVel)
	shooterPos = ProjectToPlane(shooterPos)

	toTarget := targetPos.Sub(shooterPos)

	a := targetVel.LengthSquared() - projectileSpeed*projectileSpeed
	b := 2 * targetVel.Dot(toTarget)
	c := toTarget.LengthSquared()

	if a == 0 {
		return Vec3{}, false
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Vec3{}, false
	}

	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	t, ok := smallestFutureRoot(t1, t2)
	if !ok {
		return Vec3{}, false
	}

	intercept := targetPos.Add(targetVel.Scale(t))
	if !intercept.IsFinite() {
		return Vec3{}, false
	}
	return intercept, true
}

// smallestFutureRoot picks the smaller of two ordered roots that is not in
// the past.
func smallestFutureRoot(lo, hi float64) (float64, bool) {
	switch {
	case lo >= 0 && isFinite(lo):
		return lo, true
	case hi >= 0 && isFinite(hi):
		return hi, true
	default:
		return 0, false
	}
}

// AimPoint returns the point a shooter should aim at: the intercept when
// predict is set and a solution exists, otherwise the target's current
// position.
func AimPoint(targetPos, targetVel, shooterPos Vec3, projectileSpeed float64, predict bool) Vec3 {
	if predict {
		if intercept, ok := SolveIntercept(targetPos, targetVel, shooterPos, projectileSpeed); ok {
			return intercept
		}
	}
	return ProjectToPlane(targetPos)
}
