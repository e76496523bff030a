// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the device-integration seam between the
// beamforming executor and whatever GPU framework hosts it.
//
// # Key Principle
//
// The executor RECEIVES a GPU device from its host, it does NOT create
// its own: DeviceHandle is a gg-specific name for
// gpucontext.DeviceProvider, so cmd/beamformd (or any other host)
// injects its own device/queue/adapter rather than the executor
// managing device lifetime itself.
//
// # Core Interface
//
//   - DeviceHandle: provides GPU device, queue, adapter, and surface
//     format access from the host application.
//
// NullDeviceHandle is a DeviceHandle that returns nil for everything,
// used where a concrete GPU device has not been wired in yet (see
// cmd/beamformd, pending a real wgpu adapter/device acquisition path).
package render
