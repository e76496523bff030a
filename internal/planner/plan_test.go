package planner

import (
	"testing"

	"github.com/gogpu/beamform/internal/shm"
)

func baseParams() shm.Parameters {
	return shm.Parameters{
		DecDataDim:        [4]uint32{512, 64, 32, 0},
		RFRawDim:          [2]uint32{512, 64},
		SamplingFrequency: 20e6,
		CenterFrequency:   5e6,
		DecimationRate:    4,
	}
}

func TestPlanDecodeFirstInt16SpecializesByDataKind(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDecode, shm.ShaderDAS}
	p := Plan(shaders, nil, shm.DataInt16, baseParams(), nil)

	if p.Shaders[0] != shm.ShaderDecode {
		t.Fatalf("Shaders[0] = %v, want ShaderDecode (Int16 decode-first maps to itself)", p.Shaders[0])
	}
	if p.Shaders[0].IsGeneric() {
		t.Fatal("planned shader must not report IsGeneric")
	}
}

func TestPlanDecodeFirstComplexDataKindSpecializes(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDecode, shm.ShaderDAS}
	p := Plan(shaders, nil, shm.DataFloat32Complex, baseParams(), nil)
	if p.Shaders[0] != shm.ShaderDecodeFloatComplex {
		t.Fatalf("Shaders[0] = %v, want ShaderDecodeFloatComplex", p.Shaders[0])
	}
}

func TestPlanDecodeNotFirstCollapsesToComplexVariant(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDemodulate, shm.ShaderDecode, shm.ShaderDAS}
	p := Plan(shaders, nil, shm.DataInt16, baseParams(), nil)
	if p.Shaders[1] != shm.ShaderDecodeInt16Complex {
		t.Fatalf("Shaders[1] = %v, want ShaderDecodeInt16Complex", p.Shaders[1])
	}

	p2 := Plan(shaders, nil, shm.DataFloat32, baseParams(), nil)
	if p2.Shaders[1] != shm.ShaderDecodeFloatComplex {
		t.Fatalf("Shaders[1] = %v, want ShaderDecodeFloatComplex", p2.Shaders[1])
	}
}

func TestPlanDemodulateFirstWithFloatDataUsesDemodulateFloat(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDemodulate, shm.ShaderDecode, shm.ShaderDAS}
	p := Plan(shaders, nil, shm.DataFloat32, baseParams(), nil)
	if p.Shaders[0] != shm.ShaderDemodulateFloat {
		t.Fatalf("Shaders[0] = %v, want ShaderDemodulateFloat", p.Shaders[0])
	}
	if p.Demodulate.MapChannels != 1 {
		t.Fatalf("MapChannels = %v, want 1 when Demodulate runs first", p.Demodulate.MapChannels)
	}
}

func TestPlanDASRespectsCoherencyWeighting(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDAS}
	params := baseParams()
	params.CoherencyWeighting = 0
	p := Plan(shaders, nil, shm.DataInt16, params, nil)
	if p.Shaders[0] != shm.ShaderDASFast {
		t.Fatalf("Shaders[0] = %v, want ShaderDASFast when coherency weighting disabled", p.Shaders[0])
	}

	params.CoherencyWeighting = 1
	p2 := Plan(shaders, nil, shm.DataInt16, params, nil)
	if p2.Shaders[0] != shm.ShaderDAS {
		t.Fatalf("Shaders[0] = %v, want ShaderDAS when coherency weighting enabled", p2.Shaders[0])
	}
}

func TestPlanWithoutDemodulateResetsCenterFrequencyAndDecimation(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDecode, shm.ShaderDAS}
	p := Plan(shaders, nil, shm.DataInt16, baseParams(), nil)
	if p.Parameters.CenterFrequency != 0 {
		t.Fatalf("CenterFrequency = %v, want 0", p.Parameters.CenterFrequency)
	}
	if p.Parameters.DecimationRate != 1 {
		t.Fatalf("DecimationRate = %v, want 1", p.Parameters.DecimationRate)
	}
}

func TestPlanDemodulateAppliesFilterTimeOffset(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDecode, shm.ShaderDemodulate, shm.ShaderDAS}
	stageParams := []shm.StageParameters{{}, {FilterSlot: 2}, {}}
	var gotSlot int
	offsetFn := func(slot int, fs float32) float32 {
		gotSlot = slot
		return -1.5e-7
	}
	p := Plan(shaders, stageParams, shm.DataInt16, baseParams(), offsetFn)
	if gotSlot != 2 {
		t.Fatalf("offsetFn called with slot %d, want 2", gotSlot)
	}
	if p.Parameters.TimeOffset != -1.5e-7 {
		t.Fatalf("TimeOffset = %v, want -1.5e-7", p.Parameters.TimeOffset)
	}
}

func TestPlanDecodeFirstStrideDerivation(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDecode, shm.ShaderDAS}
	params := baseParams()
	p := Plan(shaders, nil, shm.DataInt16, params, nil)

	if p.Decode.InputChannelStride != params.RFRawDim[0] {
		t.Fatalf("InputChannelStride = %v, want %v", p.Decode.InputChannelStride, params.RFRawDim[0])
	}
	if p.Decode.OutputChannelStride != params.DecDataDim[0]*params.DecDataDim[2] {
		t.Fatalf("OutputChannelStride = %v, want %v", p.Decode.OutputChannelStride, params.DecDataDim[0]*params.DecDataDim[2])
	}
}

func TestPlanDemodulateReducesSamplingFrequencyAndDecDataDim(t *testing.T) {
	shaders := []shm.ShaderKind{shm.ShaderDecode, shm.ShaderDemodulate, shm.ShaderDAS}
	params := baseParams()
	p := Plan(shaders, nil, shm.DataInt16, params, nil)

	wantFs := params.SamplingFrequency / float32(params.DecimationRate)
	if p.Parameters.SamplingFrequency != wantFs {
		t.Fatalf("SamplingFrequency = %v, want %v", p.Parameters.SamplingFrequency, wantFs)
	}
	wantDim := params.DecDataDim[0] / params.DecimationRate
	if p.Parameters.DecDataDim[0] != wantDim {
		t.Fatalf("DecDataDim[0] = %v, want %v", p.Parameters.DecDataDim[0], wantDim)
	}
}
