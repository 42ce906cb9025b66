// Package notification keeps the in-process feed of user-visible outcomes.
// Every mutating service call records a success or failure entry; the
// dashboard polls the feed to show toasts and the ops view reads the stats.
package notification

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Level classifies a feed entry.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one feed entry.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Entity    string    `json:"entity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// maxEntries bounds the feed; older entries are dropped.
const maxEntries = 200

// Feed is a bounded, mutex-guarded notification log. The zero value is not
// usable; construct with NewFeed.
type Feed struct {
	mu      sync.RWMutex
	entries []*Notification
}

func NewFeed() *Feed {
	return &Feed{}
}

// Success records a success entry for the given entity.
func (f *Feed) Success(entity, message string) {
	f.add(LevelSuccess, entity, message)
}

// Failure records an error entry for the given entity.
func (f *Feed) Failure(entity, message string) {
	f.add(LevelError, entity, message)
}

func (f *Feed) add(level Level, entity, message string) {
	n := &Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Entity:    entity,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	f.mu.Lock()
	f.entries = append(f.entries, n)
	if len(f.entries) > maxEntries {
		f.entries = f.entries[len(f.entries)-maxEntries:]
	}
	f.mu.Unlock()
}

// Recent returns up to limit entries, newest first.
func (f *Feed) Recent(limit int) []*Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if limit <= 0 || limit > len(f.entries) {
		limit = len(f.entries)
	}
	out := make([]*Notification, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out
}

// Stats returns entry counts grouped by level.
func (f *Feed) Stats() map[Level]int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	stats := make(map[Level]int)
	for _, n := range f.entries {
		stats[n.Level]++
	}
	return stats
}

// Handler exposes the feed over HTTP.
type Handler struct {
	feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.List)
	g.GET("/notifications/stats", h.GetStats)
}

// List handles GET /notifications?limit=N.
func (h *Handler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	return c.JSON(http.StatusOK, h.feed.Recent(limit))
}

// GetStats handles GET /notifications/stats.
func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.feed.Stats())
}
