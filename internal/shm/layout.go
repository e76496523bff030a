// Package shm implements the process-wide shared-memory region that
// coordinates the beamforming worker with external producers: the
// parameter block, lookup tables, lock slots, dirty-region bitfield,
// and the embedded single-producer/single-consumer work queue.
package shm

const (
	// RegionSize is the total size of the shared-memory region, matching
	// the fixed 2 GiB layout from the original implementation.
	RegionSize = 2 << 30

	// MaxShaderStages bounds the abstract shader sequence a client may
	// request in a single PushPipeline call.
	MaxShaderStages = 16

	// ChannelMappingCount is the number of transducer->channel entries.
	ChannelMappingCount = 256

	// SparseElementsCount is the number of sparse-element entries.
	SparseElementsCount = 256

	// FocalVectorCount is the number of (angle, focal depth) pairs.
	FocalVectorCount = 256

	// MaxFilterSlots is the number of resident filter slots a producer
	// can stage a FilterDescriptor into, mirroring filter.MaxSlots (the
	// two are kept in separate packages since shm must not import
	// internal/filter, but must agree on the same bound).
	MaxFilterSlots = 4

	// headerSize is a conservative estimate of the parameter block, lookup
	// tables, and embedded work queue. It is rounded up to a page boundary
	// below to compute ScratchOffset.
	headerSize = 1 << 16

	pageSize = 4096
)

// ScratchOffset is the page-aligned byte offset of the bulk-upload /
// export scratch area, following the header region.
const ScratchOffset = (headerSize + pageSize - 1) / pageSize * pageSize

// ScratchSize is the number of bytes available to bulk uploads (raw RF
// data) and exports (beamformed data, stats) after the header.
const ScratchSize = RegionSize - ScratchOffset

// MaxRFDataSize is an alias for the maximum raw RF payload a single
// region can hold; RF data shares the scratch area with exports, so in
// practice the caller bounds it further via Parameters.RFRawDim.
const MaxRFDataSize = ScratchSize
