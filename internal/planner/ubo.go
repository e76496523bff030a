// Package planner rewrites a client-requested abstract shader sequence
// into a concrete, data-kind-specialized pipeline, deriving the stride
// layout each Decode/Demodulate invocation needs from the surrounding
// stage order.
package planner

// DecodeUBO carries the per-invocation uniform block the Decode kernel
// binds: transmit count, decode mode, and the stride layout describing
// how samples/channels/transmits are packed in its input and output
// buffers.
type DecodeUBO struct {
	DecodeMode    uint32
	TransmitCount uint32

	InputChannelStride   uint32
	InputSampleStride    uint32
	InputTransmitStride  uint32
	OutputChannelStride  uint32
	OutputSampleStride   uint32
	OutputTransmitStride uint32
}

// DemodulateUBO carries the per-invocation uniform block the
// Demodulate kernel binds.
type DemodulateUBO struct {
	SamplingFrequency   float32
	DemodulationFrequency float32
	DecimationRate      uint32

	InputChannelStride   uint32
	InputSampleStride    uint32
	InputTransmitStride  uint32
	OutputChannelStride  uint32
	OutputSampleStride   uint32
	OutputTransmitStride uint32

	// MapChannels selects whether this invocation also performs the
	// channel-mapping indirection normally done by Decode, set when
	// Demodulate runs before Decode and so absorbs Decode's first pass.
	MapChannels uint32
}
