package app

import (
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewTransport is the shared outbound HTTP transport. Injecting it keeps the
// fetch path swappable in tests.
func NewTransport(lc fx.Lifecycle, log *zap.Logger) http.RoundTripper {
	return &transport{base: http.DefaultTransport, log: log}
}

type transport struct {
	base http.RoundTripper
	log  *zap.Logger
}

func (tpt *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := tpt.base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		tpt.log.Sugar().Debugw("outbound request failed",
			"url", req.URL.String(), "elapsed_msecs", int(elapsed.Milliseconds()), "err", err)
	} else {
		tpt.log.Sugar().Debugw("outbound request completed",
			"url", req.URL.String(), "status", resp.StatusCode, "elapsed_msecs", int(elapsed.Milliseconds()))
	}
	return resp, err
}
