//go:build integration

package job

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestRedisAddr starts a disposable Redis container, mirroring the
// PostgresTestHelper pattern used for the repository package.
func newTestRedisAddr(ctx context.Context, t *testing.T) string {
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestJobSchedulerEnqueueOptimize(t *testing.T) {
	ctx := context.Background()
	addr := newTestRedisAddr(ctx, t)

	scheduler, err := NewJobScheduler(addr)
	require.NoError(t, err)
	defer scheduler.Close()

	runID, err := scheduler.EnqueueOptimize(ctx, 0.9, 0.2, 7)
	require.NoError(t, err)
	assert.NotEqual(t, runID.String(), "")

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: addr})
	defer inspector.Close()

	require.Eventually(t, func() bool {
		tasks, err := inspector.ListPendingTasks("default")
		return err == nil && len(tasks) == 1
	}, 5*time.Second, 100*time.Millisecond)
}
