// Package middleware provides reusable HTTP middleware for the Tribute Wall API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsPreflightMaxAge is how long, in seconds, a browser may cache a preflight.
const corsPreflightMaxAge = 600

// NewCORSHandler returns a middleware that lets the wall's front end, served
// from one of allowedOrigins, call the API. Origins are full origins with no
// trailing slash. The bearer session token travels in Authorization, and
// Content-Disposition is exposed so a browser can name the export download.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         corsPreflightMaxAge,
	})
	return c.Handler
}
