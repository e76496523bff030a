package executor

import (
	"fmt"
	"time"

	"github.com/gogpu/beamform/internal/frame"
	"github.com/gogpu/beamform/internal/gpu"
	"github.com/gogpu/beamform/internal/shm"
	"github.com/gogpu/beamform/internal/timing"
)

// RunCompute drives one full Compute dispatch: it begins a compute
// pass, stages every shader in the current plan in order, publishes
// the resulting frame into the frame ring, and records the
// ComputeFrameBegin/Shader/ComputeFrameEnd timing events the stats
// coalescer drains, matching do_compute_shader's begin/dispatch-loop/
// end/publish sequence.
//
// No wgpu adapter/device acquisition is wired yet (see Buffers), so the
// pass is recorded against a bare, nil-backed gpu.ComputePassEncoder:
// every method on that type is nil-safe and simply tracks dispatch
// count, which is enough to exercise the staging and timing logic
// end to end ahead of a real backend.
func (e *Executor) RunCompute(viewPlane shm.ViewPlane) error {
	if !e.HasRawData() {
		return fmt.Errorf("executor: run compute: no raw data has arrived yet")
	}

	plan := e.Plan()
	if len(plan.Shaders) == 0 {
		return fmt.Errorf("executor: run compute: no shaders planned, call ComputeSetup first")
	}

	header := e.Region.Header()
	params := header.Parameters

	e.mu.Lock()
	e.frameSeq++
	frameID := e.frameSeq
	e.mu.Unlock()

	dim := frame.NewDim([3]uint32{params.OutputPoints[0], params.OutputPoints[1], params.OutputPoints[2]}, MaxTextureDim)
	f := frame.NewFrame(frameID, dim, viewPlane)
	idx := e.Frames.Put(f)

	pass := NewComputePassEncoderHandle(&gpu.ComputePassEncoder{})

	e.Timing.Push(timing.Event{Kind: timing.EventComputeFrameBegin})

	for i, shader := range plan.Shaders {
		start := time.Now()
		if err := e.Stage(pass, shader, i == 0, params, i); err != nil {
			return fmt.Errorf("executor: run compute: stage %d (%s): %w", i, shader, err)
		}
		e.Timing.Push(timing.Event{
			TimerCount: uint64(time.Since(start).Nanoseconds()),
			Kind:       timing.EventShader,
			Shader:     shader,
		})
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("executor: run compute: end pass: %w", err)
	}

	e.Timing.Push(timing.Event{Kind: timing.EventComputeFrameEnd})
	e.Stats.Drain(e.Timing)

	e.Frames.At(idx).Ready = true
	return nil
}
