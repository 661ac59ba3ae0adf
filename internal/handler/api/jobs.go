package api

import (
	"errors"
	"net/http"

	resdto "shortstay/internal/handler/dto/response"
	"shortstay/internal/handler/httperr"
	"shortstay/internal/jobs"

	"github.com/gin-gonic/gin"
)

type JobsHandler struct {
	scheduler *jobs.Scheduler
}

func NewJobsHandler(scheduler *jobs.Scheduler) *JobsHandler {
	return &JobsHandler{scheduler: scheduler}
}

func (h *JobsHandler) ListJobs(c *gin.Context) {
	statuses := h.scheduler.Statuses()

	response := make([]resdto.JobStatusResponse, len(statuses))
	for i, s := range statuses {
		response[i] = resdto.FromJobStatus(s)
	}
	c.JSON(http.StatusOK, response)
}

func (h *JobsHandler) TriggerJob(c *gin.Context) {
	status, err := h.scheduler.Trigger(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, jobs.ErrUnknownJob) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown job", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromJobStatus(*status))
}
