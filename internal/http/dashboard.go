package httpapi

import (
	"net/http"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

type salesResponse struct {
	Sales []model.SalesPoint `json:"sales"`
}

func (a *App) overviewHandler(w http.ResponseWriter, r *http.Request) {
	ov, err := a.Dashboard.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (a *App) kpisHandler(w http.ResponseWriter, r *http.Request) {
	k, err := a.Dashboard.KPIs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (a *App) salesHandler(w http.ResponseWriter, r *http.Request) {
	points, err := a.Dashboard.Sales(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, salesResponse{Sales: points})
}
