package auth

import (
	"encoding/gob"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func init() {
	// Flashes ride inside the cookie session and need gob registration.
	gob.Register(Flash{})
}

// Flash is a one-shot message rendered on the next page load.
type Flash struct {
	Level   string // "success" or "error"
	Message string
}

// AddFlash queues a flash message on the session.
func AddFlash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.AddFlash(Flash{Level: level, Message: message})
	if err := session.Save(); err != nil {
		log.Error("failed to save flash message", "error", err)
	}
}

// ConsumeFlashes returns and clears the queued flash messages.
func ConsumeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(); err != nil {
			log.Error("failed to clear flash messages", "error", err)
		}
	}
	flashes := make([]Flash, 0, len(raw))
	for _, r := range raw {
		if f, ok := r.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
