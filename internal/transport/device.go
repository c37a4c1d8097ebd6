package transport

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

// Device writes printer bytes to a character device node such as
// /dev/usb/lp0. A sidecar flock guards the device so two platen
// processes cannot interleave their output on the same printer; the
// kernel serializes individual writes but not whole jobs.
type Device struct {
	path string
	file *os.File
	lock *flock.Flock
}

// OpenDevice opens the device node for writing and acquires its job
// lock. It fails immediately when another process holds the lock or
// when the device is not writable.
func OpenDevice(path string) (*Device, error) {
	if err := unix.Access(path, unix.W_OK); err != nil {
		return nil, fmt.Errorf("device %s is not writable: %w", path, err)
	}

	lock := flock.New(path + ".lock")
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock device %s: %w", path, err)
	}
	if !held {
		return nil, fmt.Errorf("device %s is busy: another print job holds the lock", path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open device %s: %w", path, err)
	}

	return &Device{path: path, file: file, lock: lock}, nil
}

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

func (d *Device) Write(p []byte) (int, error) {
	return d.file.Write(p)
}

// Close releases the device and its job lock.
func (d *Device) Close() error {
	err := d.file.Close()
	if unlockErr := d.lock.Unlock(); unlockErr != nil && err == nil {
		err = unlockErr
	}
	return err
}
