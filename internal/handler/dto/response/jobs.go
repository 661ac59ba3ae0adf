package response

import (
	"time"

	"shortstay/internal/jobs"
)

type JobStatusResponse struct {
	Name         string     `json:"name"`
	Interval     string     `json:"interval"`
	Running      bool       `json:"running"`
	Runs         int        `json:"runs"`
	Failures     int        `json:"failures"`
	LastRun      *time.Time `json:"lastRun,omitempty"`
	LastDuration string     `json:"lastDuration"`
	LastCount    int        `json:"lastCount"`
	LastError    string     `json:"lastError,omitempty"`
}

func FromJobStatus(s jobs.JobStatus) JobStatusResponse {
	return JobStatusResponse{
		Name:         s.Name,
		Interval:     s.Interval.String(),
		Running:      s.Running,
		Runs:         s.Runs,
		Failures:     s.Failures,
		LastRun:      s.LastRun,
		LastDuration: s.LastDuration.String(),
		LastCount:    s.LastCount,
		LastError:    s.LastError,
	}
}
