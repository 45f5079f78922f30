package cli

import (
	"time"

	"github.com/lingua-network/lingua/internal/daemon"
	"github.com/lingua-network/lingua/internal/domain"
)

// openDaemon loads config and wires the full service graph for
// one-shot CLI commands.
func openDaemon() (*daemon.Daemon, error) {
	return daemon.New()
}

// todayKey returns the local calendar-date key for "today".
func todayKey() string {
	return domain.DayKey(time.Now())
}
