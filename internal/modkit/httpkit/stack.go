package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"minutes/internal/platform/config"
	mw "minutes/internal/platform/net/middleware"
)

// CommonStack is the middleware every API route runs behind, read from cfg:
// CORS_ORIGINS (csv, default "*"), TIMEOUT (default 30s), MAX_INFLIGHT (0 is unlimited)
// and SLOW_REQUEST (default 500ms)
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		mw.RequestID(),
		mw.RequestLogger(),
		mw.RealIP(),
		mw.AccessLog(cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond)),
		mw.RecoverJSON,
		mw.NoCache(),
		mw.CORS(cfg.MayCSV("CORS_ORIGINS", []string{"*"})),
		mw.Compress(flate.BestSpeed),
		mw.StripSlashes(),
		mw.Throttle(cfg.MayInt("MAX_INFLIGHT", 0)),
		mw.Timeout(cfg.MayDuration("TIMEOUT", 30*time.Second)),
	}
}
