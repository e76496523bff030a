package executor

import (
	"testing"

	"github.com/gogpu/beamform/internal/shm"
)

func TestDASVoxelTransformCollapsesYForForces(t *testing.T) {
	p := shm.Parameters{
		DASShaderID:    shm.DASForces,
		OutputPoints:   [4]uint32{128, 1, 128, 0},
		OutputMinCoord: [4]float32{-10, 0, 0, 0},
		OutputMaxCoord: [4]float32{10, 0, 40, 0},
	}
	m := DASVoxelTransform(p)
	if m[1][1] != 0 {
		t.Fatalf("scale.Y = %v, want 0 for FORCES", m[1][1])
	}
	if m[3][1] != 0 {
		t.Fatalf("translate.Y = %v, want 0 for FORCES", m[3][1])
	}
}

func TestDASVoxelTransformHerculesPlacesOffAxisSlice(t *testing.T) {
	p := shm.Parameters{
		DASShaderID:    shm.DASHercules,
		OutputPoints:   [4]uint32{128, 1, 128, 0},
		OutputMinCoord: [4]float32{-10, 0, 0, 0},
		OutputMaxCoord: [4]float32{10, 0, 40, 0},
		OffAxisPos:     3.5,
		BeamformPlane:  0,
	}
	m := DASVoxelTransform(p)
	// BeamformPlane 0 rotates a quarter turn about Z, which carries the
	// off-axis Y placement into -X.
	if m[3][0] != -3.5 {
		t.Fatalf("translate.X = %v, want rotated off-axis pos -3.5", m[3][0])
	}
}

func TestDASVoxelTransformHerculesVolumeIgnoresOffAxis(t *testing.T) {
	p := shm.Parameters{
		DASShaderID:    shm.DASHercules,
		OutputPoints:   [4]uint32{32, 32, 32, 0},
		OutputMinCoord: [4]float32{-10, -10, 0, 0},
		OutputMaxCoord: [4]float32{10, 10, 40, 0},
		OffAxisPos:     9.9,
	}
	m := DASVoxelTransform(p)
	// Y placement before rotation: volume center minus the recentered
	// half-grid; the quarter turn about Z carries it into -X.
	wantY := -10 + (10.0-(-10.0))*0.5 - (32-1)*0.5*(20.0/32)
	if m[3][0] != float32(-wantY) {
		t.Fatalf("translate.X = %v, want rotated Y placement %v (off-axis ignored for full volumes)", m[3][0], -wantY)
	}
}
