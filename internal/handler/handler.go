package handler

import (
	"pitchside/backend/internal/cache"
	"pitchside/backend/internal/mailer"
)

// Mail is the shared mailer used for best-effort booking emails.
// Set once from main before the router starts serving.
var Mail mailer.Mailer = mailer.LogMailer{}

// StatsCache is the optional Redis cache for venue statistics. A nil cache
// is a no-op.
var StatsCache *cache.Cache

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}
