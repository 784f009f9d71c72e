package youtube

import (
	"fmt"
	"time"

	"yt-duration-match/domain/model"

	"github.com/sosodev/duration"
)

// ParseISODuration converts contentDetails.duration (e.g. "PT20M22S") into a time.Duration.
// Calendar components are converted with the library's fixed day/month/year lengths.
func ParseISODuration(value string) (time.Duration, error) {
	parsed, err := duration.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", model.ErrMalformedDuration, value, err)
	}
	return parsed.ToTimeDuration(), nil
}
