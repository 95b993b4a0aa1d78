package api

import (
	"net/http"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/delicious-app/delicious/api/auth"
	"github.com/delicious-app/delicious/database"
)

// errorCapture is the outermost middleware: any panic escaping a handler is
// persisted as a system error log and answered with the generic failure
// page. The page is rendered even when logging itself fails.
func errorCapture(db *database.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			msg := "unhandled failure"
			if err, ok := r.(error); ok {
				msg = err.Error()
			} else if s, ok := r.(string); ok {
				msg = s
			}
			trace := string(debug.Stack())

			var userID *uint
			if user := auth.CurrentUser(c); user != nil {
				userID = &user.ID
			}
			if err := db.RecordError(c.Request.Context(), userID, c.Request.URL.Path, c.Request.Method, msg, trace); err != nil {
				log.Error("failed to capture unhandled failure", "error", err)
			}
			log.Error("unhandled failure", "path", c.Request.URL.Path, "method", c.Request.Method, "error", msg)

			c.HTML(http.StatusInternalServerError, "warning", gin.H{})
			c.Abort()
		}()
		c.Next()
	}
}
