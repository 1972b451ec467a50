package main

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "weatherscope/internal/forecast" // imported for swagger type definitions
	"weatherscope/internal/types"
	"weatherscope/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetWeatherInput defines the query parameters for the weather endpoint
type GetWeatherInput struct {
	Location string `form:"location" binding:"required"`                  // Place name
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD
	Time     string `form:"time" binding:"omitempty,clock"`               // H:MM or HH:MM
}

var registerOnce sync.Once

// registerValidators adds the custom binding rules to gin's validator
func registerValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected binding validator engine")
			return
		}
		err = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, parseErr := weather.ParseHour(fl.Field().String())
			return parseErr == nil
		})
	})
	return err
}

// bindingMessage turns a query binding error into a client message
func bindingMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}

	fe := validationErrs[0]
	switch fe.Field() {
	case "Location":
		return "Location required"
	case "Date":
		return fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", fe.Value())
	case "Time":
		return fmt.Sprintf("Invalid time %q, expected HH:MM", fe.Value())
	}
	return err.Error()
}

// handleGetWeather godoc
// @Summary Get weather for a place
// @Description Geocode a place name and return current conditions with a six hour outlook
// @Tags weather
// @Accept json
// @Produce json
// @Param location query string true "Place name" example(Shimla)
// @Param date query string false "Date as YYYY-MM-DD, defaults to today" example(2024-01-15)
// @Param time query string false "Time of day as HH:MM, defaults to the current hour" example(14:00)
// @Success 200 {object} forecast.NormalizedForecast
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/weather [get]
func (app *App) handleGetWeather(c *gin.Context) {
	var input GetWeatherInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	// Delegate to business layer
	result, err := app.weatherService.GetWeather(c.Request.Context(), types.LocationQuery{
		Name: input.Location,
		Date: input.Date,
		Time: input.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, types.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		default:
			app.logger.Error("failed to get weather",
				"location", input.Location,
				"date", input.Date,
				"time", input.Time,
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Weather API failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
