package systems

import "testing"

// TestChunkSchedulerFairness verifies every index is updated exactly once per cycle and
// that its next update comes exactly maxChunks frames later.
func TestChunkSchedulerFairness(t *testing.T) {
	tests := []struct {
		name       string
		population int
		maxChunks  int
	}{
		{"even split", 100, 4},
		{"remainder", 103, 4},
		{"single chunk", 10, 1},
		{"more chunks than rows", 3, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewChunkScheduler(tc.population, tc.maxChunks)
			lastFrame := make([]int, tc.population)
			for i := range lastFrame {
				lastFrame[i] = -1
			}

			for frame := 0; frame < 3*tc.maxChunks; frame++ {
				lo, hi := s.Range()
				for i := lo; i < hi; i++ {
					if lastFrame[i] >= 0 && frame-lastFrame[i] != tc.maxChunks {
						t.Fatalf("index %d updated at %d after %d, want gap %d", i, frame, lastFrame[i], tc.maxChunks)
					}
					lastFrame[i] = frame
				}
				s.Advance()
			}

			for i, f := range lastFrame {
				if f < 0 {
					t.Errorf("index %d never updated", i)
				}
			}
		})
	}
}

func TestChunkSchedulerRanges(t *testing.T) {
	s := NewChunkScheduler(10, 3)
	if s.ChunkSize() != 3 {
		t.Fatalf("expected chunk size 3, got %d", s.ChunkSize())
	}

	want := [][2]int{{0, 3}, {3, 6}, {6, 10}, {0, 3}}
	for frame, w := range want {
		lo, hi := s.Range()
		if lo != w[0] || hi != w[1] {
			t.Errorf("frame %d: got [%d,%d), want [%d,%d)", frame, lo, hi, w[0], w[1])
		}
		s.Advance()
	}
}

func TestChunkSchedulerClampsInvalidInput(t *testing.T) {
	s := NewChunkScheduler(0, 0)
	if s.MaxChunks() != 1 {
		t.Errorf("expected chunk count clamped to 1, got %d", s.MaxChunks())
	}
	lo, hi := s.Range()
	if lo != 0 || hi != 1 {
		t.Errorf("expected [0,1), got [%d,%d)", lo, hi)
	}
	s.Advance()
	if s.Index() != 0 {
		t.Errorf("expected index to wrap to 0, got %d", s.Index())
	}
}
