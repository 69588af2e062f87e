package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/carebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

// POST bodies for dates, reports and exercises are wrapped in {"data": {...}}.
type envelope[T any] struct {
	Data T `json:"data"`
}

type bookRequest struct {
	Date          string `json:"date"`
	Schedule      string `json:"schedule"`
	Via           string `json:"via"`
	ProfesionalID string `json:"profesional_id"`
}

type reportRequest struct {
	Diagnostic string  `json:"diagnostic"`
	Progress   string  `json:"progress"`
	Finished   string  `json:"finished"`
	Bitacora   string  `json:"bitacora"`
	ExerciseID *string `json:"exercise_id"`
	UserID     string  `json:"user_id"`
}

type exerciseRequest struct {
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *handler) listDates(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.appointments.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) bookDate(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	var req envelope[bookRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msg(msgInvalidBody))
		return
	}

	a, err := h.appointments.Book(c.Request.Context(), userID, services.BookInput{
		DayDate:       req.Data.Date,
		Schedule:      req.Data.Schedule,
		Via:           req.Data.Via,
		ProfesionalID: req.Data.ProfesionalID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// listReports takes the patient id.
func (h *handler) listReports(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.reports.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// fileReport takes the practitioner id; the patient is in the body.
func (h *handler) fileReport(c *gin.Context) {
	profesionalID, ok := pathID(c)
	if !ok {
		return
	}
	var req envelope[reportRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msg(msgInvalidBody))
		return
	}

	r, err := h.reports.File(c.Request.Context(), profesionalID, services.FileReportInput{
		Diagnostic: req.Data.Diagnostic,
		Progress:   req.Data.Progress,
		Finished:   req.Data.Finished,
		Bitacora:   req.Data.Bitacora,
		ExerciseID: req.Data.ExerciseID,
		UserID:     req.Data.UserID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *handler) reportsPDF(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	doc, err := h.reports.RenderPDF(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="reports-`+userID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *handler) listExercises(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.exercises.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) createExercise(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	var req envelope[exerciseRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msg(msgInvalidBody))
		return
	}

	e, err := h.exercises.Create(c.Request.Context(), userID, services.CreateExerciseInput{
		Description: req.Data.Description,
		Status:      req.Data.Status,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
