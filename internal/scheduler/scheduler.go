// internal/scheduler/scheduler.go
package scheduler

import (
	"sync"
	"time"

	"livestock-engine/internal/common/logger"

	"github.com/robfig/cron/v3"
)

// FollowUpScheduler schedules intervention follow-up checks. The workflow
// engine only registers the check; delivery of whatever the check produces
// is the callback's business.
type FollowUpScheduler interface {
	ScheduleFollowUp(at time.Time, interventionID string, fn func()) error
}

// CronScheduler runs follow-ups on a cron runner. One-shot follow-ups are
// modeled as an entry that removes itself after firing.
type CronScheduler struct {
	cron   *cron.Cron
	logger logger.Logger
}

func NewCronScheduler(log logger.Logger) *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(),
		logger: log.WithFields(map[string]interface{}{"component": "scheduler"}),
	}
}

func (s *CronScheduler) Start() {
	s.logger.Info("starting follow-up scheduler", nil)
	s.cron.Start()
}

func (s *CronScheduler) Stop() {
	s.logger.Info("stopping follow-up scheduler", nil)
	s.cron.Stop()
}

// oneShot fires exactly once at the stored instant, then never again. A cron
// expression cannot express this: the 5-field form has no year, so anything
// scheduled a year or more out would match the wrong year's date first.
type oneShot struct {
	at time.Time
}

func (o oneShot) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// ScheduleFollowUp registers a one-shot check at the given time. Times in the
// past fire within the next second.
func (s *CronScheduler) ScheduleFollowUp(at time.Time, interventionID string, fn func()) error {
	fireAt := at
	if earliest := time.Now().Add(time.Second); fireAt.Before(earliest) {
		fireAt = earliest
	}

	var (
		mu      sync.Mutex
		entryID cron.EntryID
	)
	id := s.cron.Schedule(oneShot{at: fireAt}, cron.FuncJob(func() {
		s.logger.Info("running intervention follow-up", map[string]interface{}{
			"interventionId": interventionID,
		})
		fn()
		mu.Lock()
		spent := entryID
		mu.Unlock()
		s.cron.Remove(spent)
	}))
	mu.Lock()
	entryID = id
	mu.Unlock()

	s.logger.Debug("follow-up scheduled", map[string]interface{}{
		"interventionId": interventionID,
		"at":             fireAt.Format(time.RFC3339),
	})
	return nil
}
