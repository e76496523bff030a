package shm

// DataKind identifies the numeric representation of raw RF samples
// flowing into the first pipeline stage.
type DataKind uint32

const (
	DataInt16 DataKind = iota
	DataInt16Complex
	DataFloat32
	DataFloat32Complex
	dataKindCount
)

// Clamp returns d if it is a valid DataKind, otherwise the zero value
// (Int16), matching spec.md §4.4's "an unrecognized data_kind is
// clamped to the in-range enum".
func (d DataKind) Clamp() DataKind {
	if d >= dataKindCount {
		return DataInt16
	}
	return d
}

// SampleSize returns the byte size of one raw sample of this kind:
// 2 bytes for 16-bit integer samples, 4 for float32, doubled for the
// complex variants (interleaved real/imaginary components).
func (d DataKind) SampleSize() int {
	switch d.Clamp() {
	case DataInt16:
		return 2
	case DataInt16Complex:
		return 4
	case DataFloat32:
		return 4
	case DataFloat32Complex:
		return 8
	default:
		return 2
	}
}

func (d DataKind) String() string {
	switch d {
	case DataInt16:
		return "Int16"
	case DataInt16Complex:
		return "Int16Complex"
	case DataFloat32:
		return "Float32"
	case DataFloat32Complex:
		return "Float32Complex"
	default:
		return "Unknown"
	}
}

// ShaderKind enumerates both the abstract (generic) kernel tags a
// client may request and the concrete, data-kind-specialized variants
// the planner rewrites them into. Only the generic tags are valid
// input to PushPipeline. ShaderDecode, ShaderDemodulate and ShaderDAS
// also stand for the Int16 decode, the Int16 demodulate and the
// coherency-weighted DAS variants, so a planned Plan.Shaders can hold
// them alongside the other concrete tags.
type ShaderKind uint32

const (
	// Generic stages: valid input to PushPipeline; the planner also emits
	// each of them as a concrete variant.
	ShaderDecode ShaderKind = iota
	ShaderDemodulate
	ShaderDAS

	// Concrete Decode variants.
	ShaderDecodeInt16Complex
	ShaderDecodeFloat
	ShaderDecodeFloatComplex

	// Concrete Demodulate variant.
	ShaderDemodulateFloat

	// Concrete DAS variant.
	ShaderDASFast

	// Stages with no generic/concrete split.
	ShaderMinMax
	ShaderSum

	shaderKindCount
)

func (s ShaderKind) String() string {
	switch s {
	case ShaderDecode:
		return "Decode"
	case ShaderDemodulate:
		return "Demodulate"
	case ShaderDAS:
		return "DAS"
	case ShaderDecodeInt16Complex:
		return "DecodeInt16Complex"
	case ShaderDecodeFloat:
		return "DecodeFloat"
	case ShaderDecodeFloatComplex:
		return "DecodeFloatComplex"
	case ShaderDemodulateFloat:
		return "DemodulateFloat"
	case ShaderDASFast:
		return "DASFast"
	case ShaderMinMax:
		return "MinMax"
	case ShaderSum:
		return "Sum"
	default:
		return "Unknown"
	}
}

// IsGeneric reports whether s is one of the three abstract tags a
// client may place at the head of a requested pipeline. Because those
// three values also stand for concrete variants, it returns true for
// them in a planned Plan as well.
func (s ShaderKind) IsGeneric() bool {
	return s == ShaderDecode || s == ShaderDemodulate || s == ShaderDAS
}

// ShaderKindCount is the number of distinct shader kinds, used to size
// per-shader timing accumulators.
const ShaderKindCount = int(shaderKindCount)

// DASShaderKind selects the beamforming geometry used by the DAS/DASFast
// kernels: how raw transmit/channel data maps onto the output voxel
// grid, and how the voxel-space transform is constructed.
type DASShaderKind int32

const (
	DASForces DASShaderKind = iota
	DASUForces
	DASHercules
	DASUHercules
	DASRCATPW
	DASRCAVLS
	DASFlash
)

func (k DASShaderKind) String() string {
	switch k {
	case DASForces:
		return "FORCES"
	case DASUForces:
		return "UFORCES"
	case DASHercules:
		return "HERCULES"
	case DASUHercules:
		return "UHERCULES"
	case DASRCATPW:
		return "RCA_TPW"
	case DASRCAVLS:
		return "RCA_VLS"
	case DASFlash:
		return "FLASH"
	default:
		return "Unknown"
	}
}

// CollapsesY reports whether this DAS geometry collapses the Y axis of
// the voxel transform (FORCES/UFORCES/FLASH beamform a single 2-D
// plane with no elevation extent).
func (k DASShaderKind) CollapsesY() bool {
	switch k {
	case DASForces, DASUForces, DASFlash:
		return true
	default:
		return false
	}
}

// LoopsOverTransmits reports whether the DASFast per-index loop should
// iterate transmits (dec_data_dim[2]) rather than channels
// (dec_data_dim[1]) to avoid re-sampling the whole focal-vectors texture.
func (k DASShaderKind) LoopsOverTransmits() bool {
	return k == DASRCATPW || k == DASRCAVLS
}

// ViewPlane tags which 2-D slice (or full 3-D volume) a frame represents.
type ViewPlane uint32

const (
	ViewPlaneXZ ViewPlane = iota
	ViewPlaneYZ
	ViewPlaneXY
	ViewPlaneVolume
)

// DecodeMode selects the Hadamard-decode matrix variant applied during
// the Decode stage.
type DecodeMode uint32

const (
	DecodeModeNone DecodeMode = iota
	DecodeModeHadamard
)

// Parameters mirrors the original BeamformerParameters std140 layout
// field-for-field (confirmed against
// _examples/original_source/beamformer_parameters.h), restated in the
// field set spec.md §3 actually names.
type Parameters struct {
	DecDataDim         [4]uint32 // samples, channels, transmits, (unused)
	RFRawDim           [2]uint32
	OutputPoints       [4]uint32 // x, y, z, average-count
	OutputMinCoord     [4]float32
	OutputMaxCoord     [4]float32
	SamplingFrequency  float32
	CenterFrequency    float32
	SpeedOfSound       float32
	TimeOffset         float32
	DecimationRate     uint32
	DASShaderID        DASShaderKind
	Decode             DecodeMode
	BeamformPlane      int32
	OffAxisPos         float32
	CoherencyWeighting uint32
}

// Validate checks the invariants spec.md §3 requires of a parameter
// block before it is accepted into shared memory.
func (p *Parameters) Validate() error {
	if p.DecimationRate == 0 {
		return errInvalidDecimationRate
	}
	if p.DecDataDim[0]%p.DecimationRate != 0 {
		return errDecDataDimNotDivisible
	}
	return nil
}

// FocalVector is one (angle, focal depth) entry of the focal-vectors
// lookup table.
type FocalVector struct {
	Angle      float32
	FocalDepth float32
}

// FilterKind discriminates FilterDescriptor's variant. Kaiser is the
// only variant today; the type stays a tagged struct rather than a bare
// value so a second variant can be added without reshaping call sites.
type FilterKind uint32

const (
	FilterKaiser FilterKind = iota
)

// FilterDescriptor describes how to construct a 1-D filter texture.
type FilterDescriptor struct {
	Kind   FilterKind
	Cutoff float32
	Beta   float32
	Length int
}

// TimeOffset returns the pulse-length correction time contributed by a
// filter built from this descriptor at samplingFrequency, per spec.md
// §3 ("Time offset contribution: -length/(2*fs) for Kaiser").
func (f FilterDescriptor) TimeOffset(samplingFrequency float32) float32 {
	switch f.Kind {
	case FilterKaiser:
		return -float32(f.Length) / 2 / samplingFrequency
	default:
		return 0
	}
}

// StageParameters carries the opaque per-stage parameter attached to
// one entry of a requested shader sequence (e.g. which filter slot a
// Demodulate stage should bind).
type StageParameters struct {
	FilterSlot int32
}
