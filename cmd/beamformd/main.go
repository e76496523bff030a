// Command beamformd runs the beamforming worker: it owns the shared-
// memory region and the single GPU executor goroutine that drains its
// work queue, dispatching Decode/Demodulate/DAS/MinMax/Sum passes and
// publishing finished frames.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/beamform"
	"github.com/gogpu/beamform/internal/config"
	"github.com/gogpu/beamform/internal/executor"
	"github.com/gogpu/beamform/internal/reload"
	"github.com/gogpu/beamform/internal/shm"
	"github.com/gogpu/beamform/render"
)

var (
	configPath string
	regionName string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "beamformd",
	Short: "Real-time ultrasound beamforming compute worker",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create the shared-memory region and drain its work queue until signaled",
	RunE:  runWorker,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a beamformd YAML config file")
	runCmd.Flags().StringVar(&regionName, "region", "", "shared-memory region name (overrides config)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWorker(cmd *cobra.Command, args []string) error {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	beamform.SetLogger(logger)

	opts := []beamform.Option{}
	if configPath != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("beamformd: %w", err)
		}
		timeout, err := file.Timeout()
		if err != nil {
			return fmt.Errorf("beamformd: %w", err)
		}
		if file.RegionName != "" {
			opts = append(opts, beamform.WithRegionName(file.RegionName))
		}
		if file.RegionSize != 0 {
			opts = append(opts, beamform.WithRegionSize(file.RegionSize))
		}
		if timeout != 0 {
			opts = append(opts, beamform.WithDefaultTimeout(timeout))
		}
		for _, dir := range file.ShaderDirs {
			opts = append(opts, beamform.WithShaderDir(dir))
		}
		if file.FrameCapacity != 0 {
			opts = append(opts, beamform.WithFrameCapacity(file.FrameCapacity))
		}
	}
	if regionName != "" {
		opts = append(opts, beamform.WithRegionName(regionName))
	}
	cfg := beamform.NewConfig(opts...)

	region, err := shm.CreateMapping(cfg.RegionName)
	if err != nil {
		return fmt.Errorf("beamformd: create shared memory region: %w", err)
	}
	defer region.Close()

	// No wgpu adapter/device acquisition is wired yet; the executor runs
	// against a null device provider until one is plugged in here.
	exec, err := executor.New(region, render.NullDeviceHandle{}, cfg.FrameCapacity)
	if err != nil {
		return fmt.Errorf("beamformd: construct executor: %w", err)
	}
	defer exec.Close()

	worker := newWorkerContext(cfg, region, exec)

	logger.Info("beamformd started", "region", cfg.RegionName, "frame_capacity", cfg.FrameCapacity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return worker.Run(ctx)
}

func parseLogLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("beamformd: unknown log level %q", name)
	}
}

// workerContext bundles the four hot-reload entry points
// (ComputeSetup, CompleteCompute, ReloadShader, FrameStep) on explicit
// methods rather than package-level globals, so every piece of worker
// state is reachable from this one value.
type workerContext struct {
	cfg      beamform.Config
	region   *shm.Mapping
	executor *executor.Executor
	reload   *reload.Coordinator

	lastViewPlane shm.ViewPlane
}

func newWorkerContext(cfg beamform.Config, region *shm.Mapping, exec *executor.Executor) *workerContext {
	return &workerContext{cfg: cfg, region: region, executor: exec}
}

// Run drains the work queue until ctx is canceled.
func (w *workerContext) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.FrameStep(); err != nil && !errors.Is(err, shm.ErrQueueEmpty) {
				slog.Default().Error("frame step failed", "error", err)
			}
		}
	}
}

// FrameStep pops and processes one pending work item, if any.
func (w *workerContext) FrameStep() error {
	header := w.region.Header()
	item, err := header.Queue.Peek()
	if err != nil {
		return err
	}
	defer header.Queue.PopCommit()
	defer item.Done()

	switch item.Kind {
	case shm.WorkUploadBuffer:
		if item.Upload == shm.UploadRFData {
			w.executor.MarkRawDataArrived()
		}
		return nil
	case shm.WorkCompute, shm.WorkComputeIndirect:
		return w.CompleteCompute()
	case shm.WorkReloadShader:
		return w.ReloadShader(nil)
	case shm.WorkExportBuffer:
		_, err := w.executor.ExportBuffer(item.Export, nil)
		return err
	case shm.WorkCreateFilter:
		return w.createFilter(header, item.FilterSlot)
	default:
		return fmt.Errorf("beamformd: unknown work kind %v", item.Kind)
	}
}

// ComputeSetup re-plans the pipeline and resizes GPU buffers to match
// the currently staged parameters.
func (w *workerContext) ComputeSetup(shaders []shm.ShaderKind, stageParams []shm.StageParameters, dataKind shm.DataKind) error {
	return w.executor.ComputeSetup(shaders, stageParams, dataKind)
}

// CompleteCompute begins and drives one compute pass against the
// currently staged parameters, publishing the resulting frame into the
// frame ring, then posts the DispatchCompute completion signal, waking
// any producer blocked in beamform.Client.WaitForComputeDispatch. The
// signal is posted even on dispatch failure so a waiting producer isn't
// left hanging; the error itself is still returned to the caller.
func (w *workerContext) CompleteCompute() error {
	defer w.region.Header().Locks.Post(shm.LockDispatchCompute)
	return w.executor.RunCompute(w.lastViewPlane)
}

// createFilter picks up the FilterDescriptor a producer staged into
// slot via Client.CreateKaiserLowPassFilter and constructs it on the
// worker side: filter coefficient storage is GPU-owned, so construction
// must happen here rather than on the client that requested it.
func (w *workerContext) createFilter(header *shm.Header, slot int32) error {
	desc, err := header.Tables.FilterDescriptorAt(&header.Locks, w.cfg.DefaultTimeout, int(slot))
	if err != nil {
		return fmt.Errorf("beamformd: create filter: %w", err)
	}
	fs := float64(header.Parameters.SamplingFrequency)
	if err := w.executor.Filters.Create(int(slot), desc, fs); err != nil {
		return fmt.Errorf("beamformd: create filter: %w", err)
	}
	return nil
}

// ReloadShader recompiles src's specializations and, if src is nil,
// is a no-op placeholder for a shader source resolved from the work
// item's metadata by the caller.
func (w *workerContext) ReloadShader(src *reload.Source) error {
	if w.reload == nil || src == nil {
		return nil
	}
	return w.reload.Reload(src, w.lastViewPlane, workerRefresher{w})
}

// workerRefresher adapts workerContext to reload.Refresher.
type workerRefresher struct {
	w *workerContext
}

func (r workerRefresher) HasRawData() bool { return r.w.executor.HasRawData() }
func (r workerRefresher) EnqueueCompute(plane shm.ViewPlane) error {
	r.w.lastViewPlane = plane
	return r.w.region.Header().Queue.Push(shm.WorkItem{Kind: shm.WorkCompute})
}
