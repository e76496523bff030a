package executor

import "math"

// DAS local workgroup size. Y carries no local tiling (each invocation
// handles one row), matching the /32, as-is, /32 dispatch divisors used
// to drive the DAS and Sum kernels over an (x, y, z) voxel grid.
const (
	dasLocalSizeX = 32
	dasLocalSizeY = 1
	dasLocalSizeZ = 32
)

// MaxPointsPerDispatch bounds how many voxels a single DAS dispatch may
// cover, keeping any one GL command buffer submission short enough that
// the compositor and other GPU clients stay responsive.
const MaxPointsPerDispatch = 64 * 1024

// Vec3i is a 3-component integer vector, used for voxel-grid dimensions
// and dispatch offsets.
type Vec3i struct{ X, Y, Z int32 }

// Vec3u is a 3-component unsigned vector, used for workgroup counts.
type Vec3u struct{ X, Y, Z uint32 }

// Cursor walks a 3-D voxel grid in fixed-size dispatch tiles so that a
// single oversized DAS invocation never monopolizes the GPU timeline.
// It is a direct port of start_compute_cursor/step_compute_cursor: the
// cursor advances in raster order (x fastest, then y, then z) over a
// grid of target tiles whose size is derived from maxPoints.
type Cursor struct {
	cursor   Vec3i
	dispatch Vec3u
	target   Vec3i

	pointsPerDispatch uint32
	completedPoints   uint32
	totalPoints       uint32
}

func ceilDiv(n, d int32) uint32 {
	return uint32(math.Ceil(float64(n) / float64(d)))
}

// NewCursor starts a cursor over a dim-sized voxel grid, bounding each
// dispatch to at most maxPoints voxels.
func NewCursor(dim Vec3i, maxPoints uint32) *Cursor {
	invocationsPerDispatch := uint32(dasLocalSizeX * dasLocalSizeY * dasLocalSizeZ)

	c := &Cursor{}
	c.dispatch.Y = min32u(maxPoints/invocationsPerDispatch, ceilDiv(dim.Y, dasLocalSizeY))

	remaining := maxPoints / max1u(c.dispatch.Y)
	c.dispatch.X = min32u(remaining/invocationsPerDispatch, ceilDiv(dim.X, dasLocalSizeX))
	c.dispatch.Z = min32u(remaining/(invocationsPerDispatch*max1u(c.dispatch.X)), ceilDiv(dim.Z, dasLocalSizeZ))

	c.target.X = max1i(dim.X / int32(max1u(c.dispatch.X)) / dasLocalSizeX)
	c.target.Y = max1i(dim.Y / int32(max1u(c.dispatch.Y)) / dasLocalSizeY)
	c.target.Z = max1i(dim.Z / int32(max1u(c.dispatch.Z)) / dasLocalSizeZ)

	c.pointsPerDispatch = max1u(c.dispatch.X) * dasLocalSizeX *
		max1u(c.dispatch.Y) * dasLocalSizeY *
		max1u(c.dispatch.Z) * dasLocalSizeZ

	c.totalPoints = uint32(dim.X) * uint32(dim.Y) * uint32(dim.Z)
	return c
}

// Dispatch returns the workgroup counts for the current tile.
func (c *Cursor) Dispatch() Vec3u { return c.dispatch }

// Offset returns the voxel-space origin of the current tile.
func (c *Cursor) Offset() Vec3i {
	return Vec3i{
		X: c.cursor.X * int32(c.dispatch.X) * dasLocalSizeX,
		Y: c.cursor.Y * int32(c.dispatch.Y) * dasLocalSizeY,
		Z: c.cursor.Z * int32(c.dispatch.Z) * dasLocalSizeZ,
	}
}

// Step advances the cursor to the next tile in raster order and
// returns the new tile's voxel-space offset.
func (c *Cursor) Step() Vec3i {
	c.cursor.X++
	if c.cursor.X >= c.target.X {
		c.cursor.X = 0
		c.cursor.Y++
		if c.cursor.Y >= c.target.Y {
			c.cursor.Y = 0
			c.cursor.Z++
		}
	}

	c.completedPoints += c.pointsPerDispatch

	return c.Offset()
}

// Finished reports whether every voxel in the grid has been covered by
// a dispatched tile.
func (c *Cursor) Finished() bool {
	return c.completedPoints >= c.totalPoints
}

func min32u(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func max1u(a uint32) uint32 {
	if a < 1 {
		return 1
	}
	return a
}

func max1i(a int32) int32 {
	if a < 1 {
		return 1
	}
	return a
}
