package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/limaJavier/coursetables/pkg/exporter"
	"github.com/limaJavier/coursetables/pkg/model"
)

type generateRequest struct {
	Groups     []model.CourseGroup `json:"groups"`
	Filter     model.Filter        `json:"filter"`
	Strategy   string              `json:"strategy"`
	MaxResults *int                `json:"maxResults"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
}

type generateResponse struct {
	Total      int               `json:"total"`
	Pages      int               `json:"pages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Timetables []model.Timetable `json:"timetables"`
}

type exportRequest struct {
	Timetable model.Timetable `json:"timetable"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) generate(c *gin.Context) {
	var request generateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	//** Resolve defaults
	if request.Strategy == "" {
		request.Strategy = s.config.Generator.Strategy
	}
	constructor, ok := model.Timetablers[request.Strategy]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown strategy: " + request.Strategy})
		return
	}
	options := model.Options{MaxResults: s.config.Generator.MaxResults}
	if request.MaxResults != nil {
		options.MaxResults = *request.MaxResults
	}
	if options.MaxResults < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxResults must not be negative"})
		return
	}
	if request.Page == 0 {
		request.Page = 1
	}
	if request.PageSize == 0 {
		request.PageSize = s.config.Generator.PageSize
	}
	if request.Page < 1 || request.PageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page and pageSize must be positive"})
		return
	}

	//** Generate
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.Server.Timeout)
	defer cancel()

	timetables, err := constructor(options).Generate(ctx, request.Groups, request.Filter)
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, model.ErrCancelled):
		s.logger.Warn().Str("requestId", c.GetString("requestId")).Msg("timetable generation did not finish in time")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Debug().
		Str("requestId", c.GetString("requestId")).
		Str("strategy", request.Strategy).
		Int("groups", len(request.Groups)).
		Int("timetables", len(timetables)).
		Msg("timetables generated")

	c.JSON(http.StatusOK, generateResponse{
		Total:      len(timetables),
		Pages:      model.Pages(len(timetables), request.PageSize),
		Page:       request.Page,
		PageSize:   request.PageSize,
		Timetables: model.Paginate(timetables, request.Page, request.PageSize),
	})
}

func (s *Server) exportIcs(c *gin.Context) {
	var request exportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := exporter.GenerateICS(request.Timetable, s.config.ExportCalendar(), &buf); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, exporter.ErrInvalidLesson) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timetable.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
