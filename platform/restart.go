// Package platform restarts the program between scan cycles.
package platform

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// Restarter performs the warm restart ending every scan cycle.
type Restarter interface {
	RestartWarm()
}

// InProcess restarts without leaving the process: it runs Teardown so the next cycle
// starts from freshly created radio and state, then returns to the caller's loop.
type InProcess struct {
	Teardown func()
}

func (r InProcess) RestartWarm() {
	log.Debug().Msg("platform: warm restart (in process)")

	if r.Teardown != nil {
		r.Teardown()
	}
}

// Exec runs Teardown and replaces the running process with a fresh copy of itself,
// keeping arguments and environment. If the exec fails it logs and returns, which
// degrades to an in-process restart. Once Done is closed the exec is skipped so the
// process can shut down.
type Exec struct {
	Teardown func()
	// Release runs right before the exec and closes whatever would otherwise leak into
	// the new image: descriptors opened without O_CLOEXEC, exclusive locks on a tty.
	Release func()
	Done    <-chan struct{}
}

var execSelf = reexec

func (r Exec) RestartWarm() {
	if r.Teardown != nil {
		r.Teardown()
	}

	select {
	case <-r.Done:
		log.Debug().Msg("platform: shutting down, skipping exec restart")
		return
	default:
	}

	if r.Release != nil {
		r.Release()
	}

	err := execSelf()

	log.Error().Err(err).Msg("platform: exec restart failed, restarting in process")
}

func reexec() error {
	self, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "cannot locate own executable")
	}

	log.Info().Str("Executable", self).Msg("platform: warm restart (exec)")

	return errors.Wrap(unix.Exec(self, os.Args, os.Environ()), "exec failed")
}
