// Package handlers provides the read only debug routes for the ledger
// service.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/metrics"
	"github.com/dimfeld/httptreemux/v5"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// DebugMux constructs a http.Handler with the metrics and the read only
// ledger routes.
func DebugMux(log *zap.SugaredLogger, st *state.State, m *metrics.Metrics) http.Handler {
	h := Handlers{
		Log:   log,
		State: st,
	}

	mux := httptreemux.NewContextMux()

	mux.Handler(http.MethodGet, "/metrics", m.Handler())
	mux.GET("/v1/blocks", h.Blocks)
	mux.GET("/v1/balances", h.Balances)
	mux.GET("/v1/balances/:account", h.Balance)
	mux.GET("/v1/chain/valid", h.Valid)

	return mux
}

// =============================================================================

type balance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

type validity struct {
	Valid  bool   `json:"valid"`
	Height int    `json:"height"`
	Error  string `json:"error,omitempty"`
}

// Blocks returns every block starting with genesis.
func (h Handlers) Blocks(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.State.QueryBlocks())
}

// Balances returns every account in the order the accounts were created.
func (h Handlers) Balances(w http.ResponseWriter, r *http.Request) {
	accounts := h.State.QueryAccounts()

	bals := make([]balance, len(accounts))
	for i, account := range accounts {
		bals[i] = balance{Account: string(account.AccountID), Balance: account.Balance}
	}

	h.respond(w, http.StatusOK, bals)
}

// Balance returns the balance for the specified account. An account that
// has never received funds has a zero balance.
func (h Handlers) Balance(w http.ResponseWriter, r *http.Request) {
	account := httptreemux.ContextParams(r.Context())["account"]

	h.respond(w, http.StatusOK, balance{Account: account, Balance: h.State.QueryBalance(account)})
}

// Valid reports the result of verifying the chain.
func (h Handlers) Valid(w http.ResponseWriter, r *http.Request) {
	v := validity{
		Valid:  true,
		Height: h.State.QueryHeight(),
	}

	if err := h.State.VerifyChain(); err != nil {
		v.Valid = false
		v.Error = err.Error()
	}

	h.respond(w, http.StatusOK, v)
}

// respond converts the value into JSON and sends it to the client.
func (h Handlers) respond(w http.ResponseWriter, statusCode int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		h.Log.Errorw("respond", "ERROR", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		h.Log.Errorw("respond", "ERROR", err)
	}
}
