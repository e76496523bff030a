package shm

import "errors"

var (
	errInvalidDecimationRate  = errors.New("shm: decimation rate must be nonzero")
	errDecDataDimNotDivisible = errors.New("shm: dec_data_dim[0] not divisible by decimation rate")

	// ErrWorkQueueFull is returned by Queue.Push when the ring has no
	// free slot because the consumer has not yet caught up.
	ErrWorkQueueFull = errors.New("shm: work queue full")

	// ErrQueueEmpty is returned by Queue.Pop when there is no committed
	// work item waiting.
	ErrQueueEmpty = errors.New("shm: work queue empty")
)
