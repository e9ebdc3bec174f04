// Package timezone resolves the application timezone (APP_TIMEZONE) lazily and
// stamps persisted rows with it. Use IANA names such as "UTC" or "Asia/Jakarta".
package timezone

import (
	"sync"
	"time"

	"todoapi/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
	loadOnce    sync.Once
)

func location() *time.Location {
	loadOnce.Do(func() {
		appLocation = Load(config.Get().App.Timezone)
	})

	return appLocation
}

// Load resolves name into a location, falling back to UTC when it is empty or unknown.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(location())
}
