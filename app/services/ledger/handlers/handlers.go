// Package handlers manages the different versions of the API.
package handlers

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ARYANPANWAR893/payo/app/services/ledger/handlers/v1/public"
	"github.com/ARYANPANWAR893/payo/business/web/v1/mid"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/state"
	"github.com/ARYANPANWAR893/payo/foundation/web"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	State    *state.State
}

// PublicMux constructs a http.Handler with all application routes defined.
func PublicMux(cfg MuxConfig) http.Handler {
	app := web.NewApp(cfg.Shutdown, mid.Logger(cfg.Log), mid.Errors(cfg.Log), mid.Panics())

	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, "/v1/accounts", pbl.CreateAccount)
	app.Handle(http.MethodGet, "/v1/accounts", pbl.Accounts)
	app.Handle(http.MethodGet, "/v1/accounts/:account", pbl.Accounts)
	app.Handle(http.MethodGet, "/v1/accounts/:account/blocks", pbl.Blocks)
	app.Handle(http.MethodGet, "/v1/accounts/:account/verify", pbl.Verify)
	app.Handle(http.MethodGet, "/v1/accounts/:account/transactions", pbl.Transactions)
	app.Handle(http.MethodGet, "/v1/accounts/:account/requests", pbl.Requests)
	app.Handle(http.MethodPost, "/v1/deposit", pbl.Deposit)
	app.Handle(http.MethodPost, "/v1/withdraw", pbl.Withdraw)
	app.Handle(http.MethodPost, "/v1/transfer", pbl.Transfer)
	app.Handle(http.MethodPost, "/v1/requests", pbl.RequestMoney)
	app.Handle(http.MethodPost, "/v1/requests/:id/accept", pbl.AcceptRequest)
	app.Handle(http.MethodPost, "/v1/requests/:id/reject", pbl.RejectRequest)

	return app
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service, including the prometheus
// metrics endpoint.
func DebugMux(build string, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
