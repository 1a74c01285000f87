// Package ping contains handlers for pinging the server
package ping

import (
	"net/http"

	"github.com/matt-dz/silviakaka/internal/api/response"
	"github.com/matt-dz/silviakaka/internal/env"
)

type PingResponse struct {
	Status  string `json:"status"`
	Recipes int    `json:"recipes"`
	Version string `json:"version"`
}

// HandlePing godoc
//
//	@Summary	Ping endpoint.
//	@Tags		Ping
//	@Produce	json
//
//	@Success	200	{object}	PingResponse
//	@Router		/api/ping [GET]
func HandlePing(w http.ResponseWriter, r *http.Request) {
	env := env.EnvFromCtx(r.Context())
	resp := PingResponse{Status: "ok"}
	if env.Store != nil {
		resp.Recipes = env.Store.Len()
		resp.Version = env.Store.Version()
	}
	response.WriteJSON(w, r, http.StatusOK, resp)
}
