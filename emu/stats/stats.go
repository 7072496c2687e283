// Package stats serves live runtime statistics for the running emulator,
// provided by github.com/go-echarts/statsview.
//
// Once launched the graphs are at
//
//	localhost:12600/debug/statsview
//
// and the standard pprof endpoints at localhost:12600/debug/pprof/.
package stats

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const Address = "localhost:12600"

// URL of the statistics graphs.
func URL() string {
	return "http://" + Address + "/debug/statsview"
}

// PprofURL is the index of the pprof handlers served alongside the graphs.
func PprofURL() string {
	return "http://" + Address + "/debug/pprof/"
}

// Launch starts the statistics server in a new goroutine. A server that fails
// to start, usually because the port is taken, is logged and the emulator
// carries on without it.
func Launch(logger *slog.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("stats server stopped", "addr", Address, "err", err)
		}
	}()
	logger.Info("stats server available", "url", URL(), "pprof", PprofURL())
}
