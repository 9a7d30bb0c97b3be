package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/session"
)

// sessionFor resolves the authenticated owner's session, writing the
// error response itself when that fails.
func sessionFor(c *gin.Context, app App) (*session.Session, bool) {
	user := c.MustGet("user").(*internal.User)
	s, err := app.Sessions().Session(c.Request.Context(), user.ID)
	if err != nil {
		HandleError(c, app.Logger(), err, statusFor(err), "Failed to open session")
		return nil, false
	}
	return s, true
}

func GetSets(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		date := c.Query("date")
		if date == "" {
			HandleError(c, app.Logger(), errors.New("missing query parameter"), 400, "'date' is required")
			return
		}
		HandleSuccess(c, app.Logger(), newSetViews(s.ListSetsForDate(date)), nil)
	}
}

func PostSet(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		var body session.InsertSetRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		set, err := s.InsertSet(c.Request.Context(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to log set")
			return
		}
		HandleSuccess(c, app.Logger(), newSetView(*set), nil)
	}
}

func PatchSet(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid set id")
			return
		}
		var body session.UpdateSetRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := s.UpdateSet(c.Request.Context(), id, &body); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to update set")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"id": id})
	}
}

func DeleteSet(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid set id")
			return
		}
		if err := s.DeleteSet(c.Request.Context(), id); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete set")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"id": id})
	}
}

func GetWorkoutDates(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		HandleSuccess(c, app.Logger(), s.WorkoutDates(), nil)
	}
}

func GetExerciseHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid exercise id")
			return
		}
		HandleSuccess(c, app.Logger(), newSetViews(s.HistoryForExercise(id)), nil)
	}
}

func GetExerciseSummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid exercise id")
			return
		}
		sinceDays, _ := strconv.Atoi(c.DefaultQuery("days", "0"))
		summary := s.Summary(id, sinceDays)
		if summary == nil {
			HandleError(c, app.Logger(), errors.New("no sets logged"), 404, "No history for exercise")
			return
		}
		HandleSuccess(c, app.Logger(), summary, nil)
	}
}
