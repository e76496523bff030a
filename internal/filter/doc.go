// Package filter builds and stores the per-slot 1-D filters a
// Demodulate stage convolves against decoded RF data, and computes the
// time-offset correction each contributes to the beamforming pulse
// length.
//
// Kaiser-windowed low-pass is the only filter kind today (see
// kaiser.go); Store holds one Filter per slot, addressed by the slot
// index a StageParameters entry names.
package filter
