package metrics

import "sync/atomic"

// UpdateMetrics - счётчики одного прогона синхронизации.
type UpdateMetrics struct {
	ProcessedCount atomic.Int32
	UploadedCount  atomic.Int32
	ErroredCount   atomic.Int32
	CorrectedCount atomic.Int32
}

func (m *UpdateMetrics) Snapshot() map[string]int32 {
	return map[string]int32{
		"processed": m.ProcessedCount.Load(),
		"uploaded":  m.UploadedCount.Load(),
		"errored":   m.ErroredCount.Load(),
		"corrected": m.CorrectedCount.Load(),
	}
}
