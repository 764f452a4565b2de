package stealth

import (
	"testing"
	"time"
)

func TestCubicBezierCurveEndpoints(t *testing.T) {
	start := Point{X: 10, Y: 20}
	end := Point{X: 400, Y: 300}

	points := CubicBezierCurve(start, end, Point{X: 100, Y: 0}, Point{X: 300, Y: 500}, 50)
	if len(points) != 50 {
		t.Fatalf("expected 50 points, got %d", len(points))
	}
	if points[0] != start {
		t.Fatalf("path starts at %v, want %v", points[0], start)
	}
	if points[49] != end {
		t.Fatalf("path ends at %v, want %v", points[49], end)
	}
}

func TestCubicBezierCurveSingleStep(t *testing.T) {
	end := Point{X: 5, Y: 5}
	points := CubicBezierCurve(Point{}, end, Point{}, Point{}, 1)
	if len(points) != 1 || points[0] != end {
		t.Fatalf("expected only the end point, got %v", points)
	}
}

func TestMousePathStaysNearSegment(t *testing.T) {
	start := Point{X: 0, Y: 0}
	end := Point{X: 100, Y: 0}

	for i := 0; i < 20; i++ {
		for _, p := range MousePath(start, end, 25) {
			// control points deviate at most 15% of the distance sideways
			if p.Y < -15 || p.Y > 15 || p.X < -1 || p.X > 101 {
				t.Fatalf("point %v strays from the segment", p)
			}
		}
	}
}

func TestMouseStepDelay(t *testing.T) {
	edge := MouseStepDelay(0)
	middle := MouseStepDelay(0.5)
	if edge != 20*time.Millisecond {
		t.Fatalf("unexpected edge delay %s", edge)
	}
	if middle >= edge {
		t.Fatalf("middle delay %s should be shorter than edge delay %s", middle, edge)
	}
}

func TestKeystrokeDelayBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := KeystrokeDelay(i % 10)
		if d < 90*time.Millisecond || d > 1120*time.Millisecond {
			t.Fatalf("keystroke delay %s out of range", d)
		}
	}
}

func TestScrollStepsSumToTotal(t *testing.T) {
	for _, total := range []int{0, 3, 250, 1200} {
		steps := ScrollSteps(total)
		if len(steps) < 3 || len(steps) > 7 {
			t.Fatalf("unexpected step count %d", len(steps))
		}
		sum := 0
		for _, s := range steps {
			sum += s
		}
		if sum != total {
			t.Fatalf("steps %v sum to %d, want %d", steps, sum, total)
		}
	}
}
