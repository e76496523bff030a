package executor

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/gogpu/beamform/internal/frame"
	"github.com/gogpu/beamform/internal/shm"
	"github.com/gogpu/beamform/internal/timing"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	region, err := shm.CreateMapping(filepath.Join(t.TempDir(), "beamform.shm"))
	if err != nil {
		t.Fatalf("CreateMapping: %v", err)
	}
	t.Cleanup(func() { region.Close() })

	return &Executor{
		Region: region,
		Frames: frame.NewRing(4),
		Stats:  &timing.Coalescer{},
		logger: nopLogger{},
	}
}

func TestExportBeamformedDataRoundTrip(t *testing.T) {
	e := newTestExecutor(t)

	dim := frame.Dim3{X: 4, Y: 1, Z: 4}
	f := frame.NewFrame(0, dim, shm.ViewPlaneXZ)
	f.Ready = true
	e.Frames.Put(f)

	want := int(dim.X) * int(dim.Y) * int(dim.Z) * bytesPerVoxel
	payload := make([]byte, want)
	for i := range payload {
		payload[i] = byte(i)
	}

	n, err := e.ExportBuffer(ExportBeamformedData, payload)
	if err != nil {
		t.Fatalf("ExportBuffer: %v", err)
	}
	if n != want {
		t.Fatalf("wrote %d bytes, want %d", n, want)
	}

	got := e.Region.Scratch()[:want]
	if !bytes.Equal(got, payload) {
		t.Fatal("scratch bytes do not match exported payload")
	}
}

func TestExportBeamformedDataTooSmallBuffer(t *testing.T) {
	e := newTestExecutor(t)

	f := frame.NewFrame(0, frame.Dim3{X: 8, Y: 1, Z: 8}, shm.ViewPlaneXZ)
	f.Ready = true
	e.Frames.Put(f)

	_, err := e.ExportBuffer(ExportBeamformedData, make([]byte, 4))
	if err == nil {
		t.Fatal("expected error for undersized export buffer")
	}
}

func TestExportBeamformedDataRequiresReadyFrame(t *testing.T) {
	e := newTestExecutor(t)

	f := frame.NewFrame(0, frame.Dim3{X: 4, Y: 1, Z: 4}, shm.ViewPlaneXZ)
	f.Ready = false
	e.Frames.Put(f)

	_, err := e.ExportBuffer(ExportBeamformedData, make([]byte, 1<<16))
	if err == nil {
		t.Fatal("expected error exporting a not-ready frame")
	}
}

func TestExportStatsEncodesAllShaders(t *testing.T) {
	e := newTestExecutor(t)
	e.Stats.Stats.AverageTimes[shm.ShaderDAS] = 0.002
	e.Stats.Stats.RFTimeDeltaAverage = 0.05

	n, err := e.ExportBuffer(ExportStats, nil)
	if err != nil {
		t.Fatalf("ExportBuffer(Stats): %v", err)
	}
	want := (shm.ShaderKindCount + 1) * 4
	if n != want {
		t.Fatalf("wrote %d bytes, want %d", n, want)
	}
}
