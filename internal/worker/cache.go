package worker

import (
	"context"
	"log"
	"time"

	"skyline/internal/config"
	"skyline/internal/fetch"
)

// StartCacheWarmer starts the worker that keeps the default viewport's
// building data warm in Redis so first sessions do not wait on Socrata
func StartCacheWarmer() {
	cfg := config.Current()

	bbox, err := fetch.ParseBBox(cfg.DefaultBBox)
	if err != nil {
		log.Printf("Cache warmer disabled, bad default bbox %q: %v", cfg.DefaultBBox, err)
		return
	}

	client := fetch.NewClient(cfg.BuildingsURL)
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		records, err := client.FetchBuildings(ctx, bbox, cfg.FetchLimit)
		if err != nil {
			log.Printf("Cache warmer: fetch failed: %v", err)
			return
		}
		log.Printf("Cache warmer: refreshed %d building records", len(records))
	}

	go warm()

	ticker := time.NewTicker(config.CacheWarmInterval)
	go func() {
		for range ticker.C {
			warm()
		}
	}()

	log.Println("Cache warmer started with interval:", config.CacheWarmInterval)
}
