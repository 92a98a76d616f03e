package gesture

import (
	"math"
	"time"
)

// Spring parameters of the return animation
const (
	SpringTension  = 65
	SpringFriction = 10
)

// SpringCurve returns an animation curve for a damped spring with unit mass
// played over d. The curve starts at 0, may overshoot, and is pinned to 1 at
// t=1.
func SpringCurve(tension, friction float64, d time.Duration) func(float32) float32 {
	omega0 := math.Sqrt(tension)
	zeta := friction / (2 * omega0)
	seconds := d.Seconds()

	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		tau := float64(t) * seconds
		var x float64
		if zeta < 1 {
			omegaD := omega0 * math.Sqrt(1-zeta*zeta)
			envelope := math.Exp(-zeta * omega0 * tau)
			x = 1 - envelope*(math.Cos(omegaD*tau)+(zeta*omega0/omegaD)*math.Sin(omegaD*tau))
		} else {
			// critically or over damped: no oscillation
			x = 1 - math.Exp(-omega0*tau)*(1+omega0*tau)
		}
		return float32(x)
	}
}

// EaseOut is a quadratic ease-out curve for the closing animation
func EaseOut(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * (2 - t)
}
