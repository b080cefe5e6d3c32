package monitoring

import (
	"encoding/json"
	"sync"
	"time"
)

// A ProgressBar tracks how many cycles a run has completed. A zero Total
// means the run has no cycle limit.
type ProgressBar struct {
	mu sync.Mutex

	ID        string
	Name      string
	StartTime time.Time
	Total     uint64
	Finished  uint64
}

type progressRsp struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartTime    time.Time `json:"start_time"`
	Total        uint64    `json:"total"`
	Finished     uint64    `json:"finished"`
	CyclesPerSec float64   `json:"cycles_per_sec"`
}

// IncrementFinished marks more cycles as completed.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Finished += amount
}

// FinishedCycles returns the number of completed cycles.
func (b *ProgressBar) FinishedCycles() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.Finished
}

// MarshalJSON reports the bar together with its current cycle rate.
func (b *ProgressBar) MarshalJSON() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rsp := progressRsp{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
	}

	if elapsed := time.Since(b.StartTime).Seconds(); elapsed > 0 {
		rsp.CyclesPerSec = float64(b.Finished) / elapsed
	}

	return json.Marshal(rsp)
}
