package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/migillett/TranscodeTycoonGame/internal/api/middleware"
	"github.com/migillett/TranscodeTycoonGame/internal/models"
	"github.com/migillett/TranscodeTycoonGame/pkg/logger"
)

type JobService interface {
	ListJobs(refresh bool) []models.Job
	GetJob(jobID string) (*models.Job, error)
	ClaimJob(jobID, userID string) (*models.QueuedJob, error)
	DeleteQueuedJob(jobID, userID string) error
}

type JobHandler struct {
	service  JobService
	upgrader websocket.Upgrader
}

func NewJobHandler(service JobService) *JobHandler {
	return &JobHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// List returns the open board sorted by payout, refilling it first. A job_id
// query filters to one job; refresh=true prunes stale jobs before the refill.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"

	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		h.service.ListJobs(refresh)
		job, err := h.service.GetJob(jobID)
		if err != nil {
			writeGameError(w, err, http.StatusNotAcceptable)
			return
		}
		writeJSON(w, http.StatusOK, job)
		return
	}

	writeJSON(w, http.StatusOK, h.service.ListJobs(refresh))
}

// Claim pops the job off the board into the caller's queue. A full queue is
// 406; a missing or already-claimed job is 404.
func (h *JobHandler) Claim(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]
	queued, err := h.service.ClaimJob(jobID, middleware.UserID(r))
	if err != nil {
		writeGameError(w, err, http.StatusNotAcceptable)
		return
	}
	writeJSON(w, http.StatusAccepted, queued)
}

// Delete removes a job from the caller's queue, pulling later jobs earlier.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]
	if err := h.service.DeleteQueuedJob(jobID, middleware.UserID(r)); err != nil {
		writeGameError(w, err, http.StatusNotAcceptable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type wsMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Feed streams the available-job list over a websocket once per second.
func (h *JobHandler) Feed(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("websocket")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug().Err(err).Msg("Connection closed")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(wsMessage{
				Type:    "available_jobs",
				Payload: h.service.ListJobs(false),
			}); err != nil {
				log.Debug().Err(err).Msg("Job feed send failed")
				return
			}
		}
	}
}
