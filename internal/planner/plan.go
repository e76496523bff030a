package planner

import "github.com/gogpu/beamform/internal/shm"

// decodeTable maps a raw DataKind to the concrete Decode variant used
// when Decode runs first in the pipeline, matching beamformer.c's
// decode_table literal.
var decodeTable = [4]shm.ShaderKind{
	shm.DataInt16:          shm.ShaderDecode,
	shm.DataInt16Complex:   shm.ShaderDecodeInt16Complex,
	shm.DataFloat32:        shm.ShaderDecodeFloat,
	shm.DataFloat32Complex: shm.ShaderDecodeFloatComplex,
}

// FilterTimeOffset resolves the time-offset contribution of the filter
// bound to a Demodulate stage's StageParameters.FilterSlot.
type FilterTimeOffset func(slot int, samplingFrequencyHz float32) float32

// Plan is the output of planning a requested shader sequence: the
// concrete, specialized stage list together with the UBO contents each
// Decode/Demodulate invocation needs, and the Parameters block with its
// derived fields (sampling_frequency, dec_data_dim[0], time_offset)
// folded in.
type Plan struct {
	Shaders         []shm.ShaderKind
	StageParameters []shm.StageParameters

	Decode     DecodeUBO
	Demodulate DemodulateUBO

	Parameters shm.Parameters
}

// Plan rewrites shaders/stageParams (as requested via PushPipeline) into
// a concrete Plan, given the current data kind and parameter block.
// This is a direct port of plan_compute_pipeline: the branch structure
// on decode_first/demod_first and the stride derivations are preserved
// exactly, since they encode how the Decode and Demodulate kernels
// agree on buffer layout without a shared header.
func Plan(shaders []shm.ShaderKind, stageParams []shm.StageParameters, dataKind shm.DataKind, params shm.Parameters, timeOffset FilterTimeOffset) Plan {
	bp := params
	dataKind = dataKind.Clamp()

	decodeFirst := len(shaders) > 0 && shaders[0] == shm.ShaderDecode
	demodFirst := len(shaders) > 0 && shaders[0] == shm.ShaderDemodulate

	plan := Plan{
		Shaders:         make([]shm.ShaderKind, len(shaders)),
		StageParameters: make([]shm.StageParameters, len(shaders)),
	}

	demodulating := false
	for i, shader := range shaders {
		sp := shm.StageParameters{}
		if i < len(stageParams) {
			sp = stageParams[i]
		}

		switch shader {
		case shm.ShaderDecode:
			if decodeFirst {
				shader = decodeTable[dataKind]
			} else if dataKind == shm.DataInt16 {
				shader = shm.ShaderDecodeInt16Complex
			} else {
				shader = shm.ShaderDecodeFloatComplex
			}
		case shm.ShaderDemodulate:
			if !demodFirst || (demodFirst && dataKind == shm.DataFloat32) {
				shader = shm.ShaderDemodulateFloat
			}
			if timeOffset != nil {
				bp.TimeOffset += timeOffset(int(sp.FilterSlot), bp.SamplingFrequency)
			}
			demodulating = true
		case shm.ShaderDAS:
			if bp.CoherencyWeighting == 0 {
				shader = shm.ShaderDASFast
			}
		}

		plan.Shaders[i] = shader
		plan.StageParameters[i] = sp
	}

	dp := &plan.Decode
	dp.DecodeMode = uint32(bp.Decode)
	dp.TransmitCount = bp.DecDataDim[2]

	if decodeFirst {
		dp.InputChannelStride = bp.RFRawDim[0]
		dp.InputSampleStride = 1
		dp.InputTransmitStride = bp.DecDataDim[0]

		dp.OutputChannelStride = bp.DecDataDim[0] * bp.DecDataDim[2]
		dp.OutputSampleStride = 1
		dp.OutputTransmitStride = bp.DecDataDim[0]
	}

	if demodulating {
		mp := &plan.Demodulate
		mp.SamplingFrequency = bp.SamplingFrequency
		mp.DemodulationFrequency = bp.CenterFrequency
		mp.DecimationRate = bp.DecimationRate

		bp.SamplingFrequency /= float32(mp.DecimationRate)
		bp.DecDataDim[0] /= mp.DecimationRate

		mp.InputSampleStride = 1
		mp.InputTransmitStride = bp.DecDataDim[0] * mp.DecimationRate
		mp.OutputChannelStride = bp.DecDataDim[0] * bp.DecDataDim[2]

		if demodFirst {
			// Demodulate absorbs Decode's first pass, so it writes
			// directly into the layout Decode would otherwise produce.
			mp.InputChannelStride = bp.RFRawDim[0]
			mp.OutputSampleStride = bp.DecDataDim[2]
			mp.OutputTransmitStride = 1
			mp.MapChannels = 1

			dp.InputChannelStride = mp.OutputChannelStride
			dp.InputSampleStride = mp.OutputSampleStride
			dp.InputTransmitStride = mp.OutputTransmitStride

			dp.OutputChannelStride = bp.DecDataDim[0] * bp.DecDataDim[2]
			dp.OutputSampleStride = 1
			dp.OutputTransmitStride = bp.DecDataDim[0]
		} else {
			mp.InputChannelStride = dp.OutputChannelStride
			mp.OutputSampleStride = 1
			mp.OutputTransmitStride = bp.DecDataDim[0]
			mp.MapChannels = 0
		}
	} else {
		bp.CenterFrequency = 0
		bp.DecimationRate = 1
	}

	plan.Parameters = bp
	return plan
}
