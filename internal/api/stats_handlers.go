package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devlarabar/fitnotes-v2/internal/analytics"
)

func GetAnalytics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
		if err != nil || days < 0 {
			days = analytics.DefaultWindowDays
		}
		HandleSuccess(c, app.Logger(), s.Analytics(days), nil)
	}
}

func GetCatalog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := app.Catalog()
		meta := map[string]any{
			"exercises":      len(cat.Exercises()),
			"categories":     len(cat.Categories()),
			"weight_units":   len(cat.WeightUnits()),
			"distance_units": len(cat.DistanceUnits()),
		}
		HandleSuccess(c, app.Logger(), gin.H{
			"exercises":      cat.Exercises(),
			"categories":     cat.Categories(),
			"weight_units":   cat.WeightUnits(),
			"distance_units": cat.DistanceUnits(),
		}, meta)
	}
}
