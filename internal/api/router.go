package api

import (
	"github.com/gin-gonic/gin"

	"github.com/devlarabar/fitnotes-v2/internal/auth"
	"github.com/devlarabar/fitnotes-v2/internal/config"
)

// NewRouter wires the full HTTP surface. Every route is authenticated.
func NewRouter(app App, cfg *config.Config, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/sets", GetSets(app))
		apiGroup.POST("/sets", PostSet(app))
		apiGroup.PATCH("/sets/:id", PatchSet(app))
		apiGroup.DELETE("/sets/:id", DeleteSet(app))
		apiGroup.GET("/sets/dates", GetWorkoutDates(app))

		apiGroup.GET("/exercises/:id/history", GetExerciseHistory(app))
		apiGroup.GET("/exercises/:id/summary", GetExerciseSummary(app))

		apiGroup.GET("/analytics", GetAnalytics(app))
		apiGroup.GET("/catalog", GetCatalog(app))

		apiGroup.GET("/days/:date/comment", GetDayComment(app))
		apiGroup.PUT("/days/:date/comment", PutDayComment(app))
		apiGroup.DELETE("/days/:date/comment", DeleteDayComment(app))
	}

	return r
}
