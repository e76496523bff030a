package executor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/beamform/internal/shm"
)

// ErrExportBufferTooSmall is returned when the caller-supplied buffer
// (or the shared scratch area) cannot hold the requested export
// payload, matching spec.md §7's ExportSpaceOverflow error code.
var ErrExportBufferTooSmall = errors.New("executor: export buffer too small")

// ExportKind aliases shm.ExportKind, letting WorkItem.Export (a
// cross-process field) and ExportBuffer's parameter share one
// definition without this package importing shm twice over.
type ExportKind = shm.ExportKind

const (
	ExportBeamformedData = shm.ExportBeamformedData
	ExportStats          = shm.ExportStats
)

// bytesPerVoxel matches the RG32F texture format DAS writes into: two
// float32 components (real, imaginary) per voxel.
const bytesPerVoxel = 2 * 4

// ExportBuffer copies the most recent beamformed frame (or the
// coalesced stats table) into the shared scratch area and reports the
// number of bytes written, mirroring spec.md §4's ExportBuffer work
// item. data must already hold the latest frame's pixels in
// interleaved real/imaginary float32 pairs (the texture readback
// itself is a GPU operation outside this package's scope; callers
// supply the already-read-back bytes).
//
// Returns ErrExportBufferTooSmall if the scratch area can't hold the
// requested kind's payload, matching spec.md §7's "resource-bound
// transient error, no state mutation" handling for export overflow.
func (e *Executor) ExportBuffer(kind ExportKind, data []byte) (int, error) {
	scratch := e.Region.Scratch()

	switch kind {
	case ExportBeamformedData:
		f := e.Frames.At(e.Frames.Latest())
		if !f.Ready {
			return 0, fmt.Errorf("executor: export: latest frame is not ready")
		}
		want := int(f.Dim.X) * int(f.Dim.Y) * int(f.Dim.Z) * bytesPerVoxel
		if len(data) < want {
			return 0, fmt.Errorf("%w: have %d bytes, need %d", ErrExportBufferTooSmall, len(data), want)
		}
		if len(scratch) < want {
			return 0, fmt.Errorf("%w: scratch area too small for %d bytes", ErrExportBufferTooSmall, want)
		}
		n := copy(scratch, data[:want])
		return n, nil
	case ExportStats:
		payload := e.encodeStats()
		if len(scratch) < len(payload) {
			return 0, fmt.Errorf("%w: scratch area too small for stats payload", ErrExportBufferTooSmall)
		}
		n := copy(scratch, payload)
		return n, nil
	default:
		return 0, fmt.Errorf("executor: export: unknown export kind %d", kind)
	}
}

// encodeStats serializes the coalesced timing stats as a flat
// little-endian float32 array: per-shader averages followed by the RF
// inter-arrival average, matching the original's direct struct copy of
// BeamformerComputeStatsTable into the export scratch area.
func (e *Executor) encodeStats() []byte {
	n := shm.ShaderKindCount + 1
	buf := make([]byte, n*4)
	for i, v := range e.Stats.Stats.AverageTimes {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[shm.ShaderKindCount*4:], math.Float32bits(e.Stats.Stats.RFTimeDeltaAverage))
	return buf
}
