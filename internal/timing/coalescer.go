package timing

import "github.com/gogpu/beamform/internal/shm"

// StatsDepth is the number of frames of per-shader timing history kept
// for rolling averages, matching BeamformerComputeStatsTable's history
// window.
const StatsDepth = 32

// RFHistoryDepth is the number of RF inter-arrival samples kept for the
// rolling RF-rate average.
const RFHistoryDepth = 32

// Stats holds the coalesced, drained timing history: a rolling table of
// per-shader GPU times across the last StatsDepth frames, the
// per-shader averages derived from it, and the RF data inter-arrival
// average.
type Stats struct {
	times [StatsDepth][shm.ShaderKindCount]float32

	AverageTimes [shm.ShaderKindCount]float32

	rfTimeDeltas       [RFHistoryDepth]float32
	lastRFTimerCount   uint64
	RFTimeDeltaAverage float32

	latestFrameIndex uint32
	latestRFIndex    uint32

	frameActive bool
}

// Coalescer drains a Ring into a Stats table, computing rolling
// per-shader and RF-rate averages. It holds no reference to the ring it
// drains; Drain is called with the ring explicitly so a single
// Coalescer can be reused across rings in tests.
type Coalescer struct {
	Stats Stats
}

// Drain consumes every event the producer has committed to r since the
// last Drain call, folding each into the coalescer's Stats.
//
// This is a direct port of coalesce_timing_table: ComputeFrameBegin
// clears the next stats-table row, ComputeFrameEnd publishes it and
// advances latestFrameIndex, Shader accumulates GPU time into the
// current row, and RFData folds an inter-arrival delta into the RF
// history. Per-shader and RF averages are only recomputed once, after
// the whole backlog has drained, gated by which kinds of event were
// actually seen (the "seen" bitfield in the original).
func (c *Coalescer) Drain(r *Ring) {
	target := r.WriteIndex()
	statsIndex := (c.Stats.latestFrameIndex + 1) % StatsDepth

	var seenShader [shm.ShaderKindCount]bool
	var seenRF bool

	for r.ReadIndex() != target {
		info := r.At(r.ReadIndex())
		switch info.Kind {
		case EventComputeFrameBegin:
			c.Stats.frameActive = true
			c.Stats.times[statsIndex] = [shm.ShaderKindCount]float32{}
		case EventComputeFrameEnd:
			c.Stats.frameActive = false
			c.Stats.latestFrameIndex = statsIndex
			statsIndex = (statsIndex + 1) % StatsDepth
		case EventShader:
			c.Stats.times[statsIndex][info.Shader] += float64ToSeconds(info.TimerCount)
			seenShader[info.Shader] = true
		case EventRFData:
			c.Stats.latestRFIndex = (c.Stats.latestRFIndex + 1) % RFHistoryDepth
			delta := float64ToSeconds(info.TimerCount - c.Stats.lastRFTimerCount)
			c.Stats.rfTimeDeltas[c.Stats.latestRFIndex] = delta
			c.Stats.lastRFTimerCount = info.TimerCount
			seenRF = true
		}
		r.Advance()
	}

	for shader := range seenShader {
		if !seenShader[shader] {
			continue
		}
		var sum float32
		for i := range c.Stats.times {
			sum += c.Stats.times[i][shader]
		}
		c.Stats.AverageTimes[shader] = sum / StatsDepth
	}

	if seenRF {
		var sum float32
		for _, d := range c.Stats.rfTimeDeltas {
			sum += d
		}
		c.Stats.RFTimeDeltaAverage = sum / RFHistoryDepth
	}
}

// float64ToSeconds converts a nanosecond GPU timer count to seconds as
// float32, matching the original's `(f32)count / 1.0e9f` cast chain
// (computed in float64 first to avoid intermediate precision loss on
// large counter values before truncating to float32).
func float64ToSeconds(count uint64) float32 {
	return float32(float64(count) / 1.0e9)
}
