package transcriptserver

import (
	"sync/atomic"
	"time"
)

// Stats counts successful extractions for the server's lifetime or since the
// last reset. Safe for concurrent use.
type Stats struct {
	videos atomic.Int64
	words  atomic.Int64
	since  atomic.Int64 // unix nanos
}

// NewStats returns zeroed counters.
func NewStats() *Stats {
	s := &Stats{}
	s.since.Store(time.Now().UnixNano())
	return s
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	VideosProcessed int64     `json:"videos_processed"`
	WordsExtracted  int64     `json:"words_extracted"`
	Since           time.Time `json:"since"`
}

// Record adds one processed video and its word count.
func (s *Stats) Record(words int) {
	s.videos.Add(1)
	s.words.Add(int64(words))
}

// Snapshot reads the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		VideosProcessed: s.videos.Load(),
		WordsExtracted:  s.words.Load(),
		Since:           time.Unix(0, s.since.Load()).UTC(),
	}
}

// Reset zeroes the counters.
func (s *Stats) Reset() {
	s.videos.Store(0)
	s.words.Store(0)
	s.since.Store(time.Now().UnixNano())
}
