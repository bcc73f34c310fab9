package cli

import (
	"testing"
	"time"

	"github.com/charbel291291291/election2026/internal/client/api"
	"github.com/charbel291291291/election2026/internal/client/connectivity"
	"github.com/charbel291291291/election2026/internal/client/state"
	"github.com/stretchr/testify/assert"
)

func statusApp() *App {
	return &App{
		monitor: connectivity.NewMonitor(nil, time.Minute),
		state:   state.New(),
	}
}

func TestGetStatus_LoggedOutOffline(t *testing.T) {
	a := statusApp()
	assert.Equal(t, "(offline)", a.getStatus())
}

func TestGetStatus_LoggedInOnline(t *testing.T) {
	a := statusApp()
	a.profile = &api.Profile{PhoneNumber: "+96170000001"}
	a.monitor.Set(true)

	assert.Equal(t, "(+96170000001 online)", a.getStatus())
}

func TestGetStatus_ShowsPendingAndRoot(t *testing.T) {
	a := statusApp()
	a.profile = &api.Profile{PhoneNumber: "+96170000001"}
	a.monitor.Set(true)
	a.state.SetPending(3)
	a.state.SetElevated(time.Now().Add(time.Minute))

	assert.Equal(t, "(+96170000001 online root pending:3)", a.getStatus())
}
