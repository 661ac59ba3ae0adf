package jobs

import (
	"shortstay/internal/pkg/config"
	"shortstay/internal/usecase/commands"
)

const (
	JobExpireStaleBookings   = "expire-stale-bookings"
	JobCompleteFinishedStays = "complete-finished-stays"
	JobSendStayReminders     = "send-stay-reminders"
)

// RegisterBookingJobs wires the booking batch commands onto the scheduler.
func RegisterBookingJobs(s *Scheduler, cfg config.JobsConfig, cmds commands.BookingCommands) {
	s.Register(JobExpireStaleBookings, cfg.ExpiryInterval, cmds.ExpireStalePending)
	s.Register(JobCompleteFinishedStays, cfg.CompletionInterval, cmds.CompleteFinishedStays)
	s.Register(JobSendStayReminders, cfg.ReminderInterval, cmds.SendStayReminders)
}
