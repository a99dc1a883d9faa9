package timezone

import (
	"parkflow/config"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	SetLocation(config.Get().App.Timezone)
}

// Load resolves an IANA zone name. An empty name is UTC.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}

	return time.LoadLocation(name) //nolint:wrapcheck
}

// SetLocation switches the application zone, keeping the previous one if
// name cannot be resolved.
func SetLocation(name string) {
	loc, err := Load(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, keeping " + appLocation.String())

		return
	}

	appLocation = loc

	log.Debug().Str("timezone", loc.String()).Msg("application timezone set")
}

func GetLocation() *time.Location {
	return appLocation
}

// Now is the wall clock in the application zone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
