package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse represents the response for the ping endpoint
type PingResponse struct {
	Message  string `json:"message" example:"pong"`       // Response message
	Geocoder string `json:"geocoder" example:"openmeteo"` // Active geocoding provider
	Fallback bool   `json:"fallback" example:"false"`     // Seasonal estimates served when upstream is down
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running and report the active providers
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:  "pong",
		Geocoder: app.cfg.Providers.Geocoder,
		Fallback: app.cfg.App.FallbackOnUpstreamFailure,
	})
}
