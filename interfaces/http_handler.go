package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-screener/domain"
	"candidate-screener/infrastructure"
	"candidate-screener/pipeline"
)

// Publisher enqueues screening tasks for the async worker.
type Publisher interface {
	PublishTask(task infrastructure.ScreeningTask) error
}

type HTTPHandler struct {
	Store     *infrastructure.Store
	Queue     Publisher
	Evaluator *pipeline.Evaluator
	Extractor *infrastructure.TextExtractor
}

func NewHTTPHandler(router *gin.Engine, store *infrastructure.Store, queue Publisher, evaluator *pipeline.Evaluator, extractor *infrastructure.TextExtractor) {
	h := &HTTPHandler{Store: store, Queue: queue, Evaluator: evaluator, Extractor: extractor}

	router.POST("/screen-resume", h.ScreenResume)
	router.POST("/evaluate", h.Evaluate)
	router.GET("/result/:id", h.GetResult)
	router.GET("/sessions", h.ListSessions)
	router.GET("/sessions/:id", h.GetSession)
	router.GET("/sessions/:id/rounds", h.GetRoundResults)
}

// ScreenResume accepts a resume file upload plus form fields and runs the
// full pipeline synchronously. technical_answers and scenario_answer are
// optional form fields; missing ones simply fail their rounds.
func (h *HTTPHandler) ScreenResume(c *gin.Context) {
	resumeHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume is required"})
		return
	}
	resumeFile, err := resumeHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open resume file"})
		return
	}
	defer resumeFile.Close()

	resumeText, err := h.Extractor.ExtractText(resumeFile, resumeHeader.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract resume text: " + err.Error()})
		return
	}

	payload := pipeline.Payload{
		FullName:       c.PostForm("full_name"),
		Email:          c.PostForm("email"),
		Phone:          c.PostForm("phone"),
		Role:           c.PostForm("role"),
		ResumeText:     resumeText,
		ScenarioAnswer: c.PostForm("scenario_answer"),
	}

	if raw := strings.TrimSpace(c.PostForm("technical_answers")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload.TechnicalAnswers); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "technical_answers must be a JSON object"})
			return
		}
	}

	outcome, err := h.Evaluator.Evaluate(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// Evaluate accepts a full screening payload as JSON, stores a queued job
// and hands it to the worker. Returns immediately with the job id.
func (h *HTTPHandler) Evaluate(c *gin.Context) {
	var payload pipeline.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payloadMap domain.JSONMap
	raw, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode payload"})
		return
	}
	if err := json.Unmarshal(raw, &payloadMap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode payload"})
		return
	}

	jobID, err := h.Store.CreateJob(c.Request.Context(), payloadMap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	if err := h.Queue.PublishTask(infrastructure.ScreeningTask{JobID: jobID}); err != nil {
		_ = h.Store.FailJob(c.Request.Context(), jobID, "failed to queue job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     jobID,
		"status": domain.JobQueued,
	})
}

// GetResult reports the state of an async screening job. Once the job has
// completed, the completed session and its rounds are embedded.
func (h *HTTPHandler) GetResult(c *gin.Context) {
	jobID := strings.TrimSpace(c.Param("id"))

	job, err := h.Store.GetJob(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	resp := gin.H{
		"id":         job.ID,
		"status":     job.Status,
		"created_at": job.CreatedAt,
		"updated_at": job.UpdatedAt,
	}
	if job.Status == domain.JobFailed && job.Error != "" {
		resp["error"] = job.Error
	}

	if job.Status == domain.JobCompleted && job.SessionID != nil {
		sess, err := h.Store.GetSession(c.Request.Context(), *job.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rounds, err := h.Store.GetRoundResults(c.Request.Context(), *job.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp["session"] = sess
		resp["rounds"] = rounds
	}

	c.JSON(http.StatusOK, resp)
}

// ListSessions returns sessions newest first, optionally filtered by
// candidate_id, capped by limit (default 50).
func (h *HTTPHandler) ListSessions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	sessions, err := h.Store.ListSessions(c.Request.Context(), c.Query("candidate_id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *HTTPHandler) GetSession(c *gin.Context) {
	sess, err := h.Store.GetSession(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *HTTPHandler) GetRoundResults(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("id"))

	sess, err := h.Store.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	rounds, err := h.Store.GetRoundResults(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "rounds": rounds})
}
