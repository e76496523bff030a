// Package frame implements the fixed-capacity ring of beamformed
// output frames and the iterator used to gather a window of recent
// frames for averaging.
package frame

import (
	"math/bits"

	"github.com/gogpu/beamform/internal/shm"
)

// Dim3 is a 3-component frame dimension, clamped to at least 1 on each
// axis (a frame always occupies a valid, nonzero-sized 3-D texture
// even when the requested output volume collapses an axis).
type Dim3 struct{ X, Y, Z int32 }

func clampDim(v int32, maxDim int32) int32 {
	if v < 1 {
		v = 1
	}
	if maxDim > 0 && v > maxDim {
		v = maxDim
	}
	return v
}

// NewDim builds a valid frame dimension from a requested output_points
// triple, clamping each axis to at least 1 and, if maxTextureDim is
// nonzero, to at most the device's maximum 3-D texture dimension.
func NewDim(points [3]uint32, maxTextureDim int32) Dim3 {
	return Dim3{
		X: clampDim(int32(points[0]), maxTextureDim),
		Y: clampDim(int32(points[1]), maxTextureDim),
		Z: clampDim(int32(points[2]), maxTextureDim),
	}
}

// roundUpPow2 returns the smallest power of two >= v (v must be > 0).
func roundUpPow2(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len32(v-1)
}

// MipCount returns the number of mip levels a frame's 3-D texture needs
// for the MinMax stage's mip chain: ctz(round_up_pow2(max_dim)) + 1.
func (d Dim3) MipCount() int {
	maxDim := d.X
	if d.Y > maxDim {
		maxDim = d.Y
	}
	if d.Z > maxDim {
		maxDim = d.Z
	}
	return bits.TrailingZeros32(roundUpPow2(uint32(maxDim))) + 1
}

// Frame is one beamformed output volume: a 3-D texture handle opaque to
// this package (TextureID, assigned by the GPU backend), its voxel
// dimensions, and the view plane it represents.
type Frame struct {
	ID        uint64
	TextureID uint32
	Dim       Dim3
	Mips      int
	ViewPlane shm.ViewPlane

	// Ready becomes true once the executor has finished writing this
	// frame's compute pipeline and it is safe to sample or average.
	Ready bool
}

// NewFrame allocates frame bookkeeping (dimensions and mip count) for a
// new frame; the caller is responsible for creating the backing
// texture with Dim and Mips.
func NewFrame(id uint64, dim Dim3, viewPlane shm.ViewPlane) Frame {
	return Frame{ID: id, Dim: dim, Mips: dim.MipCount(), ViewPlane: viewPlane}
}
