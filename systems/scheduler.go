package systems

// ChunkScheduler bounds per-frame movement cost by cycling through contiguous
// slices of the population, one per frame.
type ChunkScheduler struct {
	population int
	maxChunks  int
	chunkSize  int
	index      int
}

// NewChunkScheduler creates a scheduler. Population and chunk count are clamped to at least 1.
func NewChunkScheduler(population, maxChunks int) *ChunkScheduler {
	if population < 1 {
		population = 1
	}
	if maxChunks < 1 {
		maxChunks = 1
	}
	return &ChunkScheduler{
		population: population,
		maxChunks:  maxChunks,
		chunkSize:  population / maxChunks,
	}
}

// Range returns the half-open index range [lo, hi) to update this frame.
// The final chunk absorbs the remainder when the population does not divide evenly.
func (s *ChunkScheduler) Range() (lo, hi int) {
	lo = s.index * s.chunkSize
	if s.index == s.maxChunks-1 {
		return lo, s.population
	}
	return lo, min(lo+s.chunkSize, s.population)
}

// Advance moves to the next chunk, wrapping after the last.
func (s *ChunkScheduler) Advance() {
	s.index = (s.index + 1) % s.maxChunks
}

// Index returns the current chunk index.
func (s *ChunkScheduler) Index() int { return s.index }

// ChunkSize returns the nominal number of rows per chunk.
func (s *ChunkScheduler) ChunkSize() int { return s.chunkSize }

// MaxChunks returns the cycle length in frames.
func (s *ChunkScheduler) MaxChunks() int { return s.maxChunks }
