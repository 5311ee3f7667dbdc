package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/minsukang/investlog-backend/internal/domain"
	"github.com/minsukang/investlog-backend/internal/usecase/chart"
	"github.com/minsukang/investlog-backend/internal/usecase/journal"
	"github.com/minsukang/investlog-backend/internal/usecase/metrics"
	"github.com/minsukang/investlog-backend/internal/usecase/profile"
	"github.com/minsukang/investlog-backend/internal/usecase/search"
)

const timeLayout = time.RFC3339

// Server exposes the journaling use cases over HTTP.
type Server struct {
	journals *journal.Service
	charts   *chart.Service
	search   *search.Service
	profiles *profile.Service
	rates    domain.RateSource
	token    string
}

// NewServer creates a new Server instance
func NewServer(
	journals *journal.Service,
	charts *chart.Service,
	searchSvc *search.Service,
	profiles *profile.Service,
	rates domain.RateSource,
	token string,
) *Server {
	return &Server{
		journals: journals,
		charts:   charts,
		search:   searchSvc,
		profiles: profiles,
		rates:    rates,
		token:    token,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api", TokenAuth(s.token))

	journals := api.Group("/journals", UserScope())
	journals.POST("", s.createJournal)
	journals.GET("", s.listJournals)
	journals.GET("/:id", s.getJournal)
	journals.PUT("/:id", s.updateJournal)
	journals.DELETE("/:id", s.deleteJournal)

	api.GET("/charts/assets", UserScope(), s.assetChart)
	api.GET("/profile", UserScope(), s.getProfile)
	api.PUT("/profile", UserScope(), s.saveProfile)

	api.GET("/search/journals", s.searchJournals)
	api.GET("/market/rate", s.exchangeRate)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func (s *Server) createJournal(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	rec, err := s.journals.Create(c.Request.Context(), currentUser(c), journalInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, journalToResponse(rec))
}

func (s *Server) listJournals(c *gin.Context) {
	records, err := s.journals.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]journalResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, journalToResponse(rec))
	}
	c.JSON(http.StatusOK, gin.H{"journals": out})
}

func (s *Server) getJournal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal id"})
		return
	}

	rec, err := s.journals.Get(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, journalToResponse(rec))
}

func (s *Server) updateJournal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal id"})
		return
	}

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	rec, err := s.journals.Update(c.Request.Context(), id, currentUser(c), journalInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, journalToResponse(rec))
}

func (s *Server) deleteJournal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal id"})
		return
	}

	if err := s.journals.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) assetChart(c *gin.Context) {
	w := metrics.ParseWindow(c.Query("window"))
	includeBenchmark := c.DefaultQuery("benchmark", "true") != "false"

	out, err := s.charts.AssetChart(c.Request.Context(), currentUser(c), w, includeBenchmark)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chartToResponse(out))
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.profiles.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileToResponse(p))
}

func (s *Server) saveProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	p, err := s.profiles.Upsert(c.Request.Context(), currentUser(c), profile.Input{
		Nickname:    req.Nickname,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileToResponse(p))
}

func (s *Server) searchJournals(c *gin.Context) {
	results, err := s.search.PublicJournals(c.Request.Context(), search.Input{
		Nickname:    c.Query("nickname"),
		RequesterID: optionalUser(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": searchResultsToResponse(results)})
}

func (s *Server) exchangeRate(c *gin.Context) {
	rate, err := s.rates.USDKRW(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "exchange rate unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pair": "USD/KRW", "rate": rate.String()})
}

// respondError translates domain errors into HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "must be") ||
		strings.Contains(msg, "must belong") ||
		strings.Contains(msg, "cannot be") ||
		strings.Contains(msg, "invalid")
}
