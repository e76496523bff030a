// Package beamform implements a real-time ultrasound beamforming
// compute engine built on a process-wide shared-memory region.
//
// # Overview
//
// One process (the beamformd worker, see cmd/beamformd) owns a
// shared-memory region and the single GPU executor that drains its
// work queue: raw RF data comes in, a planned sequence of
// Decode/Demodulate/DAS/MinMax/Sum compute passes runs on the GPU, and
// finished frames land in a lock-free ring any reader can observe.
// Any number of other processes attach to that same region as
// producers, pushing parameters, lookup tables, and RF data through a
// Client.
//
// # Quick Start
//
//	client, err := beamform.NewClient(beamform.NewConfig(
//	    beamform.WithRegionName("/beamformer"),
//	), provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.PushParameters(params)
//	client.PushPipeline([]beamform.ShaderKind{beamform.ShaderDecode, beamform.ShaderDAS}, beamform.DataInt16)
//	client.PushDataWithCompute(rawRF, beamform.ViewPlaneXZ)
//	client.WaitForComputeDispatch(time.Second)
//
// # Architecture
//
// The module is organized into:
//   - Public API: Client, Config, ErrorKind, and the wire-level type
//     aliases in types.go
//   - internal/shm: the shared-memory region, its locks, lookup
//     tables, dirty bitmap, and work queue
//   - internal/planner: turns a requested shader sequence and
//     parameter block into a concrete dispatch plan
//   - internal/executor: the GPU worker — buffer management, compute
//     pass dispatch, export, and the accelerator seam for an optional
//     external accelerated decode/Hilbert backend
//   - internal/frame, internal/timing: the frame ring and dispatch
//     timing/statistics rings consumed by readers
//   - internal/reload: recompiles and hot-swaps compute program
//     specializations
//
// # Concurrency
//
// Exactly one executor goroutine drains the work queue and owns GPU
// state; producers and the frame/timing rings are lock-free or
// per-slot-locked so pushing data never blocks beamforming in
// progress.
package beamform
