// Package net holds transport helpers shared by the http packages
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID is the id chi's RequestID middleware put on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
