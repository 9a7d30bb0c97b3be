package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devlarabar/fitnotes-v2/internal/session"
)

type dayCommentRequest struct {
	Comment string `json:"comment"`
}

func GetDayComment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		comment, found := s.DayComment(c.Param("date"))
		if !found {
			HandleError(c, app.Logger(), session.ErrNotFound, 404, "No comment for date")
			return
		}
		HandleSuccess(c, app.Logger(), comment, nil)
	}
}

// PutDayComment saves the day's note. An empty comment deletes it, which
// mirrors how the edit form behaves.
func PutDayComment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		var body dayCommentRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		comment, err := s.SaveDayComment(c.Request.Context(), c.Param("date"), body.Comment)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to save comment")
			return
		}
		HandleSuccess(c, app.Logger(), comment, nil)
	}
}

func DeleteDayComment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, app)
		if !ok {
			return
		}
		if err := s.DeleteDayComment(c.Request.Context(), c.Param("date")); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No comment for date")
				return
			}
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete comment")
			return
		}
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
