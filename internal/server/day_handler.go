package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"healthdiary/internal/domain"
)

// DayHandler serves day lookup, lazy creation and partial update.
type DayHandler struct {
	svc domain.DayService
}

func NewDayHandler(svc domain.DayService) *DayHandler {
	return &DayHandler{svc: svc}
}

// GET /api/v1/days?date=2006-01-02
func (h *DayHandler) GetByDate(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as 2006-01-02"})
		return
	}
	day, err := h.svc.GetByDate(c.Request.Context(), currentUserID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// POST /api/v1/days  body: {"date":"2006-01-02"}
func (h *DayHandler) Create(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !validDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as 2006-01-02"})
		return
	}
	day, err := h.svc.Create(c.Request.Context(), currentUserID(c), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

// PUT /api/v1/days/:dayID  body: partial day fields
func (h *DayHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "dayID")
	if !ok {
		return
	}
	var upd domain.DayUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	day, err := h.svc.Update(c.Request.Context(), currentUserID(c), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
