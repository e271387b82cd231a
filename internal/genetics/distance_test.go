package genetics

import "testing"

func TestComputeDistanceSelfIsZero(t *testing.T) {
	markers := []string{"A1", "B2", "C3"}

	result := ComputeDistance(markers, markers)
	if result.Distance != 0 {
		t.Fatalf("expected zero self distance, got %d", result.Distance)
	}
	if result.CorrelationScore != 1.0 {
		t.Fatalf("expected full self correlation, got %v", result.CorrelationScore)
	}
	if len(result.SharedTraits) != 3 {
		t.Fatalf("unexpected shared traits: %v", result.SharedTraits)
	}
}

func TestComputeDistancePartialOverlap(t *testing.T) {
	result := ComputeDistance([]string{"A1", "B2", "C2", "A3"}, []string{"A1", "A2", "A3"})
	if result.Distance != 2 {
		t.Fatalf("expected distance 2, got %d", result.Distance)
	}
	if result.CorrelationScore != 0.5 {
		t.Fatalf("expected correlation 0.5, got %v", result.CorrelationScore)
	}
}

func TestComputeDistanceIsAsymmetric(t *testing.T) {
	a := []string{"A1", "B2", "C2", "A3"}
	b := []string{"A1", "A2", "A3"}

	forward := ComputeDistance(a, b)
	reverse := ComputeDistance(b, a)
	if forward.Distance == reverse.Distance {
		t.Fatalf("expected asymmetric distances, got %d both ways", forward.Distance)
	}
	if forward.CorrelationScore == reverse.CorrelationScore {
		t.Fatalf("expected asymmetric correlations, got %v both ways", forward.CorrelationScore)
	}
}

func TestComputeDistanceEmptySelfGuardsDivision(t *testing.T) {
	result := ComputeDistance(nil, []string{"A1"})
	if result.Distance != 0 {
		t.Fatalf("expected zero distance for empty markers, got %d", result.Distance)
	}
	if result.CorrelationScore != 0 {
		t.Fatalf("expected zero correlation for empty markers, got %v", result.CorrelationScore)
	}
}

func TestComputeDistanceCorrelationBounds(t *testing.T) {
	cases := [][2][]string{
		{{"A1"}, nil},
		{{"A1", "B1"}, {"B1"}},
		{{"A1", "B1", "C1"}, {"A1", "B1", "C1", "D1"}},
		{nil, nil},
	}
	for _, pair := range cases {
		result := ComputeDistance(pair[0], pair[1])
		if result.CorrelationScore < 0 || result.CorrelationScore > 1 {
			t.Fatalf("correlation out of bounds for %v: %v", pair, result.CorrelationScore)
		}
		if result.Distance < 0 {
			t.Fatalf("negative distance for %v: %d", pair, result.Distance)
		}
	}
}
