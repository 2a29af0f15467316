package dynamo

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	tests := []struct {
		n, minChunk int
	}{
		{0, 1},
		{1, 1},
		{7, 2},
		{100, 8},
		{1000, 0},
	}

	for _, tt := range tests {
		hits := make([]int32, tt.n)
		ParallelFor(tt.n, tt.minChunk, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", tt.n, i, h)
			}
		}
	}
}

func TestFrameErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&FrameError{Frame: 3, Phase: PhaseStep, Wrapped: cause})

	if !errors.Is(err, cause) {
		t.Error("expected FrameError to unwrap to its cause")
	}

	var fe *FrameError
	if !errors.As(err, &fe) || fe.Phase != PhaseStep {
		t.Errorf("expected step phase, got %+v", fe)
	}
	if err.Error() != "frame 3 (step): boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
