package timing

import (
	"testing"

	"github.com/gogpu/beamform/internal/shm"
)

func TestCoalescerAccumulatesShaderTimeWithinAFrame(t *testing.T) {
	var r Ring
	var c Coalescer

	r.Push(Event{Kind: EventComputeFrameBegin})
	r.Push(Event{Kind: EventShader, Shader: shm.ShaderDecode, TimerCount: 1_000_000})
	r.Push(Event{Kind: EventShader, Shader: shm.ShaderDAS, TimerCount: 2_000_000})
	r.Push(Event{Kind: EventComputeFrameEnd})

	c.Drain(&r)

	if c.Stats.AverageTimes[shm.ShaderDecode] <= 0 {
		t.Fatalf("AverageTimes[Decode] = %v, want > 0", c.Stats.AverageTimes[shm.ShaderDecode])
	}
	if c.Stats.AverageTimes[shm.ShaderDAS] <= 0 {
		t.Fatalf("AverageTimes[DAS] = %v, want > 0", c.Stats.AverageTimes[shm.ShaderDAS])
	}
	if c.Stats.AverageTimes[shm.ShaderSum] != 0 {
		t.Fatalf("AverageTimes[Sum] = %v, want 0 (never seen)", c.Stats.AverageTimes[shm.ShaderSum])
	}
}

func TestCoalescerTracksRFInterArrivalAverage(t *testing.T) {
	var r Ring
	var c Coalescer

	r.Push(Event{Kind: EventRFData, TimerCount: 1_000_000_000})
	r.Push(Event{Kind: EventRFData, TimerCount: 1_050_000_000})
	c.Drain(&r)

	if c.Stats.RFTimeDeltaAverage <= 0 {
		t.Fatalf("RFTimeDeltaAverage = %v, want > 0", c.Stats.RFTimeDeltaAverage)
	}
}

func TestCoalescerDrainIsIdempotentWhenNothingNew(t *testing.T) {
	var r Ring
	var c Coalescer

	r.Push(Event{Kind: EventComputeFrameBegin})
	r.Push(Event{Kind: EventComputeFrameEnd})
	c.Drain(&r)
	before := c.Stats.latestFrameIndex

	c.Drain(&r)
	if c.Stats.latestFrameIndex != before {
		t.Fatalf("latestFrameIndex changed on no-op Drain: %d != %d", c.Stats.latestFrameIndex, before)
	}
}

func TestCoalescerAcrossMultipleFramesAdvancesStatsIndex(t *testing.T) {
	var r Ring
	var c Coalescer

	for i := 0; i < 3; i++ {
		r.Push(Event{Kind: EventComputeFrameBegin})
		r.Push(Event{Kind: EventShader, Shader: shm.ShaderSum, TimerCount: uint64(500_000 * (i + 1))})
		r.Push(Event{Kind: EventComputeFrameEnd})
	}
	c.Drain(&r)

	if c.Stats.latestFrameIndex == 0 && c.Stats.AverageTimes[shm.ShaderSum] == 0 {
		t.Fatal("expected nonzero Sum average after three frames")
	}
}
