//go:build unix

// Package segment implements the named, mutex-guarded, resizable
// shared-memory region the wire format's payload lives in (spec §4.4):
// a fixed 8-byte header holding the current payload capacity, followed
// by the payload itself, mapped via POSIX shm_open/mmap semantics.
//
// No package in the example pack implements POSIX shared memory
// directly, so this package is grounded on the idiomatic raw-syscall
// style `golang.org/x/sys/unix` is used in across the wider pack (it
// appears as a direct or transitive dependency in a majority of the
// retrieved manifests) rather than on any single teacher file.
package segment

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/kelbyrg/sbs/internal/errs"
	"github.com/kelbyrg/sbs/internal/lenc"
)

// HeaderSize is the fixed byte size of the mapped header: one
// little-endian uint64 holding the segment's current payload capacity.
// Grounded on the teacher's section.NumericHeader fixed packed-header
// convention (section/numeric_header.go's HeaderSize constant),
// generalized to this domain's much smaller header shape.
const HeaderSize = 8

// growthHeadroom is the extra capacity reserved on a resize, so repeated
// small writes don't each force a fresh ftruncate+remap (spec §4.4
// open_and_size step 3: "headroom = 32 bytes to amortize resizes").
const growthHeadroom = 32

// Segment is a mapped view of a named shared-memory region, holding the
// flock-based cross-process lock for the duration of one read or one
// write (spec §5: "each open_and_size returns a mapping that the caller
// holds for the duration of one read or one write").
type Segment struct {
	name    string
	fd      int
	mapped  []byte
	maxSize uint64
	locked  bool
}

// path maps a segment name onto a POSIX /dev/shm/<name> path, stripping
// any leading slash the caller supplies (Linux's shm_open namespace
// convention — spec §6: "follows the host's shared-memory namespace").
func path(name string) string {
	return "/dev/shm/" + strings.TrimPrefix(name, "/")
}

// lock acquires the segment's cross-process mutex: an exclusive flock on
// the segment's own file descriptor (spec §9 design note's sanctioned
// fallback for platforms without a process-shared pthread mutex; see
// SPEC_FULL.md §4.4 for the full rationale). Blocking, no timeout,
// matching spec §5 exactly.
func (s *Segment) lock() error {
	if err := unix.Flock(s.fd, unix.LOCK_EX); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMutexInitFailed, err)
	}
	s.locked = true

	return nil
}

// unlock releases the mutex only if this Segment is the one that
// acquired it. Spec §9 Open Question 2 names a bug in the reference
// where close_shm unconditionally unlocks even on paths that never
// locked; tracking locked state here makes that bug structurally
// impossible to reproduce.
func (s *Segment) unlock() error {
	if !s.locked {
		return nil
	}
	if err := unix.Flock(s.fd, unix.LOCK_UN); err != nil {
		return err
	}
	s.locked = false

	return nil
}

// payload returns the writable payload region of the mapping, following
// the header.
func (s *Segment) payload() []byte {
	return s.mapped[HeaderSize : HeaderSize+int(s.maxSize)]
}

// maxCapacity is the current payload capacity recorded in the header.
func (s *Segment) maxCapacity() uint64 {
	return s.maxSize
}

// close releases the lock (a no-op if this Segment never acquired it),
// then the mapping, then closes the file descriptor. Spec §5:
// "unlock-before-unmap".
func (s *Segment) close() error {
	err := s.unlock()
	if s.mapped != nil {
		if unmapErr := unix.Munmap(s.mapped); unmapErr != nil && err == nil {
			err = unmapErr
		}
		s.mapped = nil
	}
	if closeErr := unix.Close(s.fd); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// create performs the create operation of spec §4.4: shm_open(O_CREAT|
// O_EXCL|O_RDWR), ftruncate to header+preallocSize, stamp max_size into
// the header, unmap, close. Returns created=false (no error) if the
// segment already existed and errorIfExists is false.
func create(name string, preallocSize int, errorIfExists bool) (bool, error) {
	if preallocSize < 0 {
		return false, fmt.Errorf("%w: negative prealloc size", errs.ErrEncodeInvariant)
	}

	fd, err := unix.Open(path(name), unix.O_CREAT|unix.O_EXCL|unix.O_RDWR, 0666)
	if err != nil {
		if errors.Is(err, unix.EEXIST) {
			if errorIfExists {
				return false, fmt.Errorf("%w: %s", errs.ErrAlreadyExists, name)
			}
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
	}
	defer unix.Close(fd)

	total := int64(HeaderSize + preallocSize)
	if err := unix.Ftruncate(fd, total); err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrTruncateFailed, err)
	}

	headerMap, err := unix.Mmap(fd, 0, HeaderSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
	}
	lenc.PutUint(headerMap, uint64(preallocSize), HeaderSize)
	if err := unix.Munmap(headerMap); err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
	}

	return true, nil
}

// openAndSize performs spec §4.4's open_and_size: open (auto-creating on
// ENOENT if requested), lock, read the header's max_size, grow if
// newSize exceeds it (ftruncate + remap with headroom), and return a
// Segment mapped over header+payload, lock held.
func openAndSize(name string, newSize int, autoCreate bool) (*Segment, error) {
	if newSize < 0 {
		return nil, fmt.Errorf("%w: negative size", errs.ErrEncodeInvariant)
	}

	fd, err := unix.Open(path(name), unix.O_RDWR, 0666)
	if err != nil {
		if !errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
		}
		if !autoCreate {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, name)
		}
		if _, err := create(name, 0, false); err != nil {
			return nil, err
		}
		fd, err = unix.Open(path(name), unix.O_RDWR, 0666)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
		}
	}

	seg := &Segment{name: name, fd: fd}
	if err := seg.lock(); err != nil {
		unix.Close(fd)
		return nil, err
	}

	headerMap, err := unix.Mmap(fd, 0, HeaderSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		seg.unlock()
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
	}
	maxSize := lenc.Uint(headerMap, HeaderSize)

	if uint64(newSize) > maxSize {
		maxSize = uint64(newSize) + growthHeadroom
		if err := unix.Ftruncate(fd, int64(HeaderSize)+int64(maxSize)); err != nil {
			unix.Munmap(headerMap)
			seg.unlock()
			unix.Close(fd)
			return nil, fmt.Errorf("%w: %v", errs.ErrTruncateFailed, err)
		}
		lenc.PutUint(headerMap, maxSize, HeaderSize)
	}
	if err := unix.Munmap(headerMap); err != nil {
		seg.unlock()
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
	}

	full, err := unix.Mmap(fd, 0, HeaderSize+int(maxSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		seg.unlock()
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %v", errs.ErrMapFailed, err)
	}

	seg.mapped = full
	seg.maxSize = maxSize

	return seg, nil
}

// remove performs spec §4.4's remove: shm_unlink. Does not drain
// existing holders; callers must coordinate externally.
func remove(name string, throwError bool) (bool, error) {
	if err := unix.Unlink(path(name)); err != nil {
		if errors.Is(err, unix.ENOENT) {
			if throwError {
				return false, fmt.Errorf("%w: %s", errs.ErrNotFound, name)
			}
			return false, nil
		}
		if throwError {
			return false, fmt.Errorf("%w: %v", errs.ErrUnlinkFailed, err)
		}
		return false, nil
	}

	return true, nil
}
