package profile

import (
	"os"
	"syscall"

	"github.com/cellar-works/cellar-ctl/internal/errors"
)

// profileLock is an advisory flock on <profile>.lock. It serializes the
// create-generation-then-switch pair between cooperating processes; it
// does not protect against writers that bypass this package.
type profileLock struct {
	f *os.File
}

func acquireLock(profilePath string) (*profileLock, error) {
	f, err := os.OpenFile(profilePath+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.StoreError("failed to open profile lock", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, errors.StoreError("failed to lock profile", err)
	}

	return &profileLock{f: f}, nil
}

func (l *profileLock) release() {
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	_ = l.f.Close()
}
