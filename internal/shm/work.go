package shm

// WorkKind discriminates the variant stored in a WorkItem, mirroring the
// original BeamformWorkType tag on the C work queue's tagged union.
type WorkKind uint32

const (
	WorkReloadShader WorkKind = iota
	WorkExportBuffer
	WorkCreateFilter
	WorkUploadBuffer
	WorkCompute
	WorkComputeIndirect
)

func (k WorkKind) String() string {
	switch k {
	case WorkReloadShader:
		return "ReloadShader"
	case WorkExportBuffer:
		return "ExportBuffer"
	case WorkCreateFilter:
		return "CreateFilter"
	case WorkUploadBuffer:
		return "UploadBuffer"
	case WorkCompute:
		return "Compute"
	case WorkComputeIndirect:
		return "ComputeIndirect"
	default:
		return "Unknown"
	}
}

// UploadTarget names which shared table or buffer an UploadBuffer work
// item refreshes on the GPU side.
type UploadTarget uint32

const (
	UploadChannelMapping UploadTarget = iota
	UploadSparseElements
	UploadFocalVectors
	UploadRFData
	UploadParameters
)

// ExportKind selects which result an ExportBuffer work item copies into
// the shared scratch area.
type ExportKind uint32

const (
	ExportBeamformedData ExportKind = iota
	ExportStats
)

// WorkItem is one entry of the producer/consumer work queue. It is a
// plain Go struct carrying every variant's fields rather than the C
// source's tagged union: the queue is sized generously (QueueCapacity
// entries) so the larger footprint costs nothing, and it keeps Push/Pop
// call sites free of unsafe casts.
//
// CompletionBarrier, when non-nil, is closed by the executor once this
// item's effect is fully visible (used by ExportBuffer to let a
// producer block until the readback lands).
type WorkItem struct {
	Kind WorkKind

	ShaderKind ShaderKind
	Upload     UploadTarget
	FilterSlot int32
	Export     ExportKind

	CompletionBarrier chan struct{}
}

// Done closes the completion barrier, if any, signalling the producer
// waiting on this item. Safe to call on a WorkItem with a nil barrier.
func (w *WorkItem) Done() {
	if w.CompletionBarrier != nil {
		close(w.CompletionBarrier)
	}
}
