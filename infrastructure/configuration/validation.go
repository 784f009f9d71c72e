package configuration

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrMissingAPIKey is returned when neither API_KEY nor YOUTUBE_API_KEY is set
var ErrMissingAPIKey = errors.New("missing YouTube API key: set API_KEY or YOUTUBE_API_KEY")

// Validate checks the loaded configuration before any client is built
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return ErrMissingAPIKey
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.YouTube),
		validation.Field(&c.Cache),
		validation.Field(&c.Retry),
	)
}

func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Minutes, validation.Min(0)),
		validation.Field(&a.Seconds, validation.Min(0)),
	)
}

func (y YouTube) Validate() error {
	return validation.ValidateStruct(&y,
		validation.Field(&y.MaxResults, validation.Required, validation.Min(1)),
		validation.Field(&y.RequestTimeout, validation.Min(0)),
	)
}

func (c Cache) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(CacheDriverFile, CacheDriverRedis, CacheDriverPostgres)),
		validation.Field(&c.File, validation.When(c.Enabled && c.Driver == CacheDriverFile, validation.Required)),
		validation.Field(&c.Redis, validation.When(c.Enabled && c.Driver == CacheDriverRedis).Else(validation.Skip)),
		validation.Field(&c.Postgres, validation.When(c.Enabled && c.Driver == CacheDriverPostgres).Else(validation.Skip)),
	)
}

func (r RedisClient) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Host, validation.Required),
		validation.Field(&r.Port, validation.Required),
	)
}

func (d Db) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Host, validation.Required),
		validation.Field(&d.User, validation.Required),
	)
}

func (r Retry) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MaxAttempts, validation.Min(0)),
		validation.Field(&r.Multiplier, validation.Min(1.0)),
	)
}
