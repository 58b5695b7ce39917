package calibration

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNelderMeadFindsQuadraticMinimum(t *testing.T) {
	objective := func(x []float64) float64 {
		return (x[0]-3)*(x[0]-3) + 4*(x[1]+2)*(x[1]+2) + 1
	}
	initial := []float64{10, 0}
	got, err := NelderMead{}.Minimize(context.Background(), objective, initial, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got[0]-3) > 1e-3 || math.Abs(got[1]+2) > 1e-3 {
		t.Fatalf("expected minimum near (3, -2), got %v", got)
	}
	if initial[0] != 10 || initial[1] != 0 {
		t.Fatalf("initial vector was modified: %v", initial)
	}
}

func TestNelderMeadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NelderMead{}.Minimize(ctx, func(x []float64) float64 { return x[0] * x[0] }, []float64{1}, 1000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNelderMeadCancelledMidSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	evals := 0
	objective := func(x []float64) float64 {
		evals++
		if evals == 50 {
			cancel()
		}
		return x[0]*x[0] + x[1]*x[1]
	}
	_, err := NelderMead{}.Minimize(ctx, objective, []float64{100, -100}, 100000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNelderMeadLogsProgress(t *testing.T) {
	var log bytes.Buffer
	objective := func(x []float64) float64 { return math.Abs(x[0]-1) + math.Abs(x[1]) }
	if _, err := (NelderMead{Log: &log}).Minimize(context.Background(), objective, []float64{5, 5}, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(log.String(), "Optimization terminated") {
		t.Fatalf("expected termination summary, got %q", log.String())
	}
}

func TestInitialSimplexPerturbsOneCoordinate(t *testing.T) {
	vertices, values := initialSimplex(func(x []float64) float64 { return x[0] + x[1] }, []float64{200, 0})
	if len(vertices) != 3 || len(values) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(vertices))
	}
	if vertices[0][0] != 200 || vertices[0][1] != 0 {
		t.Fatalf("first vertex should be the start point: %v", vertices[0])
	}
	if vertices[1][0] != 210 || vertices[1][1] != 0 {
		t.Fatalf("unexpected second vertex: %v", vertices[1])
	}
	if vertices[2][0] != 200 || vertices[2][1] != zeroDelta {
		t.Fatalf("unexpected third vertex: %v", vertices[2])
	}
	if values[1] != 210 {
		t.Fatalf("vertex values must be evaluated, got %v", values)
	}
}

func TestNegativeScoreGuardsDegenerateVectors(t *testing.T) {
	if v := NegativeScore([]float64{1, 1, 0, 1, 0, 1}, nil); !math.IsInf(v, 1) {
		t.Fatalf("expected +Inf for zero-width axis, got %v", v)
	}
	if v := NegativeScore([]float64{1, 2}, nil); !math.IsInf(v, 1) {
		t.Fatalf("expected +Inf for wrong length, got %v", v)
	}
}
