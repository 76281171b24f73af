package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"labattendance/internal/attendance"
	"labattendance/internal/metrics"
)

const flashCookie = "flash"

// Handler serves the attendance page and the JSON API.
type Handler struct {
	svc *attendance.Service
}

// New creates a handler around the attendance service.
func New(svc *attendance.Service) *Handler {
	return &Handler{svc: svc}
}

// TemplateFuncs returns the helpers the index template uses.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// time12 accepts string or *string so the nullable clock_out
		// column renders without a separate branch.
		"time12": func(v any) string {
			switch t := v.(type) {
			case string:
				return formatTime12(t)
			case *string:
				if t == nil {
					return ""
				}
				return formatTime12(*t)
			}
			return ""
		},
	}
}

// formatTime12 converts HH:MM:SS to a 12-hour display form. Falls back
// to the input on parse failure, like the original filter.
func formatTime12(hhmmss string) string {
	t, err := time.Parse(attendance.TimeLayout, hhmmss)
	if err != nil {
		return hhmmss
	}
	return t.Format("03:04 PM")
}

// ---------- HTML page ----------

// Index renders the form and the records table, newest first.
func (h *Handler) Index(c *gin.Context) {
	// gin escapes cookie values on write and unescapes on read.
	flash := ""
	if v, err := c.Cookie(flashCookie); err == nil {
		flash = v
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}

	records, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		log.Printf("list records failed: %v", err)
		flash = "Error: could not load records"
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Records": records,
		"Flash":   flash,
	})
}

// SubmitForm handles the clock-in/clock-out form post and redirects
// back to the page with a flash message.
func (h *Handler) SubmitForm(c *gin.Context) {
	action := c.PostForm("action")
	matricNo := c.PostForm("matric_no")
	name := c.PostForm("name")

	var msg string
	switch action {
	case "clock_in":
		rec, err := h.svc.ClockIn(c.Request.Context(), matricNo, name)
		countOutcome(metrics.ClockIns, err)
		msg = clockInMessage(rec, matricNo, err)
	case "clock_out":
		rec, err := h.svc.ClockOut(c.Request.Context(), matricNo, name)
		countOutcome(metrics.ClockOuts, err)
		msg = clockOutMessage(rec, matricNo, err)
	default:
		msg = "Error: unknown action"
	}

	h.setFlash(c, msg)
	c.Redirect(http.StatusSeeOther, "/")
}

func clockInMessage(rec attendance.Record, matricNo string, err error) string {
	switch {
	case err == nil:
		return "Success: " + rec.Name + " clocked in at " + formatTime12(rec.ClockIn)
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		return "Error: " + matricNo + " is already clocked in. Please clock out first."
	case isValidation(err):
		return "Please enter both Matric No and Name"
	default:
		log.Printf("clock in failed: %v", err)
		return "Error: something went wrong, please try again"
	}
}

func clockOutMessage(rec attendance.Record, matricNo string, err error) string {
	switch {
	case err == nil:
		out := ""
		if rec.ClockOut != nil {
			out = *rec.ClockOut
		}
		return "Success: " + rec.Name + " clocked out at " + formatTime12(out)
	case errors.Is(err, attendance.ErrNotClockedIn):
		return "Error: " + matricNo + " has not clocked in yet."
	case isValidation(err):
		return "Please enter both Matric No and Name"
	default:
		log.Printf("clock out failed: %v", err)
		return "Error: something went wrong, please try again"
	}
}

// countOutcome bumps the accept counter on success or the matching
// rejection counter otherwise.
func countOutcome(accepted prometheus.Counter, err error) {
	switch {
	case err == nil:
		accepted.Inc()
	case isValidation(err):
		metrics.Rejections.WithLabelValues("validation").Inc()
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		metrics.Rejections.WithLabelValues("already_clocked_in").Inc()
	case errors.Is(err, attendance.ErrNotClockedIn):
		metrics.Rejections.WithLabelValues("not_clocked_in").Inc()
	default:
		metrics.Rejections.WithLabelValues("store").Inc()
	}
}

func (h *Handler) setFlash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 10, "/", "", false, true)
}

// ---------- JSON API ----------

type submitRequest struct {
	MatricNo string `json:"matric_no"`
	Name     string `json:"name"`
}

// ClockIn handles POST /v1/clockins.
func (h *Handler) ClockIn(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.svc.ClockIn(c.Request.Context(), req.MatricNo, req.Name)
	countOutcome(metrics.ClockIns, err)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ClockOut handles POST /v1/clockouts.
func (h *Handler) ClockOut(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.svc.ClockOut(c.Request.Context(), req.MatricNo, req.Name)
	countOutcome(metrics.ClockOuts, err)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListRecords handles GET /v1/records.
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load records"})
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNotClockedIn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidation(err error) bool {
	var ve *attendance.ValidationError
	return errors.As(err, &ve)
}
