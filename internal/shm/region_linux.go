//go:build linux

package shm

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapBacking opens (creating if needed) the backing file at path,
// truncates it to RegionSize, and maps it MAP_SHARED so every process
// mapping the same path observes the same bytes.
func mapBacking(path string, create bool) ([]byte, error) {
	flags := os.O_RDWR
	if create {
		flags |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if create {
		if err := f.Truncate(RegionSize); err != nil {
			return nil, err
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, RegionSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmapBacking(data []byte) error {
	return unix.Munmap(data)
}
