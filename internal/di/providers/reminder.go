package providers

import (
	"github.com/samber/do/v2"

	"github.com/literahq/litera-server/internal/config"
	"github.com/literahq/litera-server/internal/logger"
	"github.com/literahq/litera-server/internal/notify"
	"github.com/literahq/litera-server/internal/reminder"
)

// SchedulerHandle wraps the reminder scheduler for lifecycle management.
type SchedulerHandle struct {
	*reminder.Scheduler
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	return h.Scheduler.Shutdown()
}

// ProvideReminderScanner provides the due-date scanner.
func ProvideReminderScanner(i do.Injector) (*reminder.Scanner, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	dispatcher := do.MustInvoke[*notify.Dispatcher](i)

	return reminder.NewScanner(storeHandle.Store, dispatcher, log.Logger), nil
}

// ProvideReminderScheduler provides the daily reminder job on its schedule.
func ProvideReminderScheduler(i do.Injector) (*SchedulerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	scanner := do.MustInvoke[*reminder.Scanner](i)

	job := reminder.NewJob(scanner, cfg.Reminder.ScanTimeout, cfg.Reminder.MaxRetries, log.Logger)

	scheduler, err := reminder.NewScheduler(job, cfg.Reminder.DailyAt, log.Logger)
	if err != nil {
		return nil, err
	}

	return &SchedulerHandle{Scheduler: scheduler}, nil
}
