package agent

import (
	"sync/atomic"
	"time"

	"cache-metrics-exporter/internal/model"
)

// HealthStatus tracks the collection loop for the /healthz endpoint.
type HealthStatus struct {
	lastCycleAt  atomic.Int64
	lastCycleOK  atomic.Bool
	cyclesTotal  atomic.Uint64
	cyclesFailed atomic.Uint64
}

func NewHealthStatus() *HealthStatus {
	return &HealthStatus{}
}

func (h *HealthStatus) MarkCycle(ts time.Time, ok bool) {
	h.lastCycleAt.Store(ts.UnixNano())
	h.lastCycleOK.Store(ok)
	h.cyclesTotal.Add(1)
	if !ok {
		h.cyclesFailed.Add(1)
	}
}

func (h *HealthStatus) Snapshot() map[string]any {
	out := map[string]any{
		"last_cycle_ok": h.lastCycleOK.Load(),
		"cycles_total":  h.cyclesTotal.Load(),
		"cycles_failed": h.cyclesFailed.Load(),
	}
	if v := h.lastCycleAt.Load(); v > 0 {
		out["last_cycle_at"] = time.Unix(0, v).UTC()
	}
	return out
}

// healthSink records cycle completion before handing the snapshot to the
// publisher, so /healthz reflects the last published cycle.
type healthSink struct {
	sink interface {
		Publish(snap model.Snapshot)
	}
	health *HealthStatus
}

func (s *healthSink) Publish(snap model.Snapshot) {
	s.sink.Publish(snap)
	s.health.MarkCycle(snap.CollectedAt, true)
}

func (s *healthSink) CycleFailed(error) {
	s.health.MarkCycle(time.Now().UTC(), false)
}
