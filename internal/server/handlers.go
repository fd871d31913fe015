package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapit/internal/domain"
	"zapit/internal/service"
)

// Handler maps HTTP requests onto the core operations and their error
// taxonomy. Status mapping: ValidationError 400, ErrDuplicateLink 409,
// anything else 500 with the detail kept server-side.
type Handler struct {
	ingest *service.IngestService
	feed   *service.FeedService
	logger *slog.Logger
}

func NewHandler(ingest *service.IngestService, feed *service.FeedService, logger *slog.Logger) *Handler {
	return &Handler{
		ingest: ingest,
		feed:   feed,
		logger: logger,
	}
}

type addLinkRequest struct {
	Title   *string    `json:"title"`
	Link    string     `json:"link"`
	PubDate *time.Time `json:"pub_date"`
}

func (h *Handler) AddLink(c *gin.Context) {
	var req addLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.ingest.Submit(c.Request.Context(), domain.Submission{
		Title:   req.Title,
		Link:    req.Link,
		PubDate: req.PubDate,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		case errors.Is(err, domain.ErrDuplicateLink):
			c.JSON(http.StatusConflict, gin.H{"error": "link already stored"})
		default:
			h.logger.Error("failed to store link", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) Feed(c *gin.Context) {
	rss, err := h.feed.Render(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to render feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating feed"})
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
