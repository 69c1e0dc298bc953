package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultEnqueueTimeout = 10 * time.Second

// CronTrigger periodically enqueues an optimisation job on a fixed
// schedule, the way an operator would re-run the planner against a
// refreshed staffing target without an external caller remembering to.
type CronTrigger struct {
	cron          *cron.Cron
	scheduler     *JobScheduler
	cooling       float64
	comfortWeight float64
	logger        *zap.SugaredLogger
}

// NewCronTrigger builds a trigger that enqueues TypeOptimize jobs on the
// given cron spec (standard 5-field expression).
func NewCronTrigger(scheduler *JobScheduler, spec string, cooling, comfortWeight float64, logger *zap.SugaredLogger) (*CronTrigger, error) {
	t := &CronTrigger{
		cron:          cron.New(),
		scheduler:     scheduler,
		cooling:       cooling,
		comfortWeight: comfortWeight,
		logger:        logger,
	}

	_, err := t.cron.AddFunc(spec, t.fire)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Start begins the cron scheduler in the background.
func (t *CronTrigger) Start() { t.cron.Start() }

// Stop halts the cron scheduler and returns a context that is done once
// any in-flight fire has finished; Stop itself does not wait.
func (t *CronTrigger) Stop() context.Context { return t.cron.Stop() }

func (t *CronTrigger) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultEnqueueTimeout)
	defer cancel()

	seed := uint64(time.Now().UnixNano())
	runID, err := t.scheduler.EnqueueOptimize(ctx, t.cooling, t.comfortWeight, seed)
	if err != nil {
		if t.logger != nil {
			t.logger.Errorw("cron failed to enqueue optimize job", "error", err)
		}
		return
	}
	if t.logger != nil {
		t.logger.Infow("cron enqueued optimize job", "run_id", runID)
	}
}
