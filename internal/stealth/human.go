package stealth

import (
	"math"
	"time"
)

// Point is a 2D viewport coordinate
type Point struct {
	X float64
	Y float64
}

// CubicBezierCurve returns steps points along the cubic Bézier curve from
// start to end. The first point is start and the last is end.
func CubicBezierCurve(start, end, control1, control2 Point, steps int) []Point {
	if steps < 2 {
		return []Point{end}
	}
	points := make([]Point, steps)

	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		// B(t) = (1-t)³P₀ + 3(1-t)²tP₁ + 3(1-t)t²P₂ + t³P₃
		u := 1 - t

		points[i] = Point{
			X: math.Pow(u, 3)*start.X + 3*u*u*t*control1.X + 3*u*t*t*control2.X + math.Pow(t, 3)*end.X,
			Y: math.Pow(u, 3)*start.Y + 3*u*u*t*control1.Y + 3*u*t*t*control2.Y + math.Pow(t, 3)*end.Y,
		}
	}

	return points
}

// ControlPoints picks two control points at roughly 1/3 and 2/3 of the way,
// pushed sideways by up to 15% of the distance
func ControlPoints(start, end Point) (Point, Point) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	distance := math.Hypot(dx, dy)
	perp := math.Atan2(dy, dx) + math.Pi/2

	offset1 := (randFloat() - 0.5) * distance * 0.3
	offset2 := (randFloat() - 0.5) * distance * 0.3

	cp1 := Point{
		X: start.X + dx/3 + math.Cos(perp)*offset1,
		Y: start.Y + dy/3 + math.Sin(perp)*offset1,
	}
	cp2 := Point{
		X: start.X + 2*dx/3 + math.Cos(perp)*offset2,
		Y: start.Y + 2*dy/3 + math.Sin(perp)*offset2,
	}
	return cp1, cp2
}

// MousePath returns a curved path of steps points from start to end
func MousePath(start, end Point, steps int) []Point {
	cp1, cp2 := ControlPoints(start, end)
	return CubicBezierCurve(start, end, cp1, cp2, steps)
}

// MouseStepDelay is the pause after a mouse step at progress in [0, 1].
// Movement is slower at both ends of the path.
func MouseStepDelay(progress float64) time.Duration {
	speed := 1 - math.Abs(2*progress-1)
	return time.Duration(float64(10*time.Millisecond) / (speed + 0.5))
}

// KeystrokeDelay is the pause after typing the character at position
func KeystrokeDelay(position int) time.Duration {
	base := 150 * time.Millisecond
	if position < 5 {
		base = 200 * time.Millisecond
	}
	// occasional mid-sentence hesitation
	if randFloat() < 0.1 {
		base = RandomDelay(300*time.Millisecond, 800*time.Millisecond)
	}

	// ±40%
	factor := 1.0 + (randFloat()*2-1)*0.4
	return time.Duration(float64(base) * factor)
}

// ScrollSteps splits a scroll of total pixels into 3-7 uneven steps
func ScrollSteps(total int) []int {
	n := 3 + Intn(5)
	steps := make([]int, n)
	left := total
	for i := 0; i < n-1; i++ {
		share := left / (n - i)
		jitter := 0
		if share > 4 {
			jitter = Intn(share/2) - share/4
		}
		steps[i] = share + jitter
		left -= steps[i]
	}
	steps[n-1] = left
	return steps
}

func randFloat() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Float64()
}
