package background

import (
	"context"
	"log"
	"sync"
	"time"

	"restomart/internal/jobs"
	"restomart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler owns the periodic background work: low stock sweeps, dashboard
// cache refreshes, and reservation reminders.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alerts    *jobs.InventoryAlertService
	reminders *jobs.ReservationReminderService
	reports   services.ReportService
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(alerts *jobs.InventoryAlertService, reminders *jobs.ReservationReminderService,
	reports services.ReportService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		alerts:     alerts,
		reminders:  reminders,
		reports:    reports,
		jobsByName: make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.alerts.ScheduledLowStockCheck, context.Background()),
		gocron.WithName("low-stock-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low stock job: %v", err)
	} else {
		js.jobsByName["low-stock-sweep"] = lowStockJob
	}

	dashboardJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboard),
		gocron.WithName("dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobsByName["dashboard-refresh"] = dashboardJob
	}

	reminderJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.reminders.ScheduledReminderCheck, context.Background()),
		gocron.WithName("reservation-reminders"),
	)
	if err != nil {
		log.Printf("Failed to create reservation reminder job: %v", err)
	} else {
		js.jobsByName["reservation-reminders"] = reminderJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}

func (js *JobScheduler) refreshDashboard() error {
	if err := js.reports.RefreshDashboard(context.Background()); err != nil {
		log.Printf("Dashboard refresh failed: %v", err)
		return err
	}
	return nil
}

// AddJob registers an extra periodic job at runtime.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobsByName[name] = job
	return nil
}

func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobsByName[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobsByName, name)
		return err
	}
	return nil
}

// GetJobStatus reports the registered job names; exposed on the health
// endpoint.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobsByName))
	for name := range js.jobsByName {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobsByName),
		"jobs":       names,
	}
}
