package metrics

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Candidates   int
	FullPlayouts int
}

type MoveMetric struct {
	Step      int
	Player    int // Player ID
	ThinkTime time.Duration
	Transfers int
	TimedOut  bool
	SearchMetric
}

type GameMetric struct {
	ID           uuid.UUID
	NumCells     int
	Connected    bool
	Winner       int // Player ID, 0 for a draw
	TimedOut     int // Player ID that overran the time limit, 0 if none
	Rounds       int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
	ThinkTimes   [3]time.Duration // Per player ID
	MaxThinkTime [3]time.Duration // Per player ID
}

type Collector interface {
	Start(goroutines, cutoff int)
	SetCandidates(n int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	candidates   atomic.Int32
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.candidates.Store(0)
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) SetCandidates(n int) {
	m.candidates.Store(int32(n))
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Cutoff:       m.cutoff,
		Candidates:   int(m.candidates.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int) {}
func (m *dummyCollector) SetCandidates(n int)          {}
func (m *dummyCollector) AddFullPlayout()              {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
