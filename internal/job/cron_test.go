package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewCronTriggerRejectsInvalidSpec(t *testing.T) {
	_, err := NewCronTrigger(&JobScheduler{}, "not a cron spec", 0.9, 0.2, nil)
	require.Error(t, err)
}

func TestCronTriggerStartStopLifecycle(t *testing.T) {
	trigger, err := NewCronTrigger(&JobScheduler{}, "@every 1h", 0.9, 0.2, nil)
	require.NoError(t, err)

	trigger.Start()
	done := trigger.Stop()

	select {
	case <-done.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not complete")
	}
}
