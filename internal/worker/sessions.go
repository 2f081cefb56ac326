package worker

import (
	"log"
	"time"

	"skyline/internal/config"
	"skyline/internal/service/session"
)

// StartSessionReaper starts the worker that closes idle viewer sessions
func StartSessionReaper() {
	sessionService := session.GetSessionService()

	ticker := time.NewTicker(config.SessionReapInterval)
	go func() {
		for range ticker.C {
			sessionService.ReapIdle(config.SessionMaxIdle)
		}
	}()

	log.Println("Session reaper started with interval:", config.SessionReapInterval)
}
