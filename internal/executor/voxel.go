package executor

import (
	"math"

	"github.com/gogpu/beamform/internal/shm"
)

// Mat4 is a column-major 4x4 matrix: Mat4[col][row], matching the
// layout OpenGL uniform uploads expect.
type Mat4 [4][4]float32

func identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func translation(x, y, z float32) Mat4 {
	m := identity()
	m[3][0], m[3][1], m[3][2] = x, y, z
	return m
}

func scale(x, y, z float32) Mat4 {
	m := identity()
	m[0][0], m[1][1], m[2][2] = x, y, z
	return m
}

// rotationAboutZ rotates about the Z axis by turns (a fraction of a
// full revolution): rotationAboutZ(0.25) is a 90-degree rotation.
func rotationAboutZ(turns float32) Mat4 {
	theta := float64(turns) * 2 * math.Pi
	c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
	m := identity()
	m[0][0], m[0][1] = c, s
	m[1][0], m[1][1] = -s, c
	return m
}

func mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k][row] * b[col][k]
			}
			out[col][row] = sum
		}
	}
	return out
}

// DASVoxelTransform builds the matrix that maps a voxel grid index
// (0..output_points-1 per axis) into physical transducer-space
// coordinates, reproducing das_voxel_transform_matrix.
//
// T1 recenters the integer voxel index grid about its own midpoint, T2
// translates to the physical output volume's center, S scales by the
// volume's extent divided by its point count, and R orients the volume
// per DAS geometry: FORCES/UFORCES/FLASH collapse the Y axis to a
// single 2-D plane, while HERCULES/UHERCULES/RCA_TPW/RCA_VLS rotate by
// the requested beamform plane and, for a single-slice volume, place
// that slice at the configured off-axis position.
func DASVoxelTransform(bp shm.Parameters) Mat4 {
	min := [3]float32{bp.OutputMinCoord[0], bp.OutputMinCoord[1], bp.OutputMinCoord[2]}
	max := [3]float32{bp.OutputMaxCoord[0], bp.OutputMaxCoord[1], bp.OutputMaxCoord[2]}
	extent := [3]float32{
		float32(math.Abs(float64(max[0] - min[0]))),
		float32(math.Abs(float64(max[1] - min[1]))),
		float32(math.Abs(float64(max[2] - min[2]))),
	}
	points := [3]float32{
		float32(bp.OutputPoints[0]),
		float32(bp.OutputPoints[1]),
		float32(bp.OutputPoints[2]),
	}

	t1 := translation(-(points[0]-1)*0.5, -(points[1]-1)*0.5, -(points[2]-1)*0.5)
	t2 := translation(min[0]+extent[0]*0.5, min[1]+extent[1]*0.5, min[2]+extent[2]*0.5)
	s := scale(safeDiv(extent[0], points[0]), safeDiv(extent[1], points[1]), safeDiv(extent[2], points[2]))

	var r Mat4
	switch bp.DASShaderID {
	case shm.DASForces, shm.DASUForces, shm.DASFlash:
		r = identity()
		s[1][1] = 0
		t2[3][1] = 0
	case shm.DASHercules, shm.DASUHercules, shm.DASRCATPW, shm.DASRCAVLS:
		turns := float32(0.25)
		if bp.BeamformPlane != 0 {
			turns = 0
		}
		r = rotationAboutZ(turns)
		if !(points[0] > 1 && points[1] > 1 && points[2] > 1) {
			t2[3][1] = bp.OffAxisPos
		}
	default:
		r = identity()
	}

	return mul(r, mul(t2, mul(s, t1)))
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
