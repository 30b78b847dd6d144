package config

import (
	"errors"
	"net"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/hamed0406/opscheck/internal/domain"
)

// Validate checks the shape of the configuration. Credentials are not
// checked here: a bad key shows up as a failed call to the service using it.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.GenieURL, validation.Required, is.URL),
		validation.Field(&c.GenieTeam, validation.Required),
		validation.Field(&c.MailgunAPI, validation.Required, is.URL),
		validation.Field(&c.EmailFrom, validation.Required, is.EmailFormat),
		validation.Field(&c.Recipients, validation.Each(is.EmailFormat)),
		validation.Field(&c.AlertPriority, validation.Required, validation.By(validatePriority)),
		validation.Field(&c.StorageBackend, validation.Required, validation.In(BackendS3, BackendGCS)),
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.S3Endpoint, is.URL),
		validation.Field(&c.GCSEndpoint, is.URL),
		validation.Field(&c.PostgresPrefix, validation.Required),
		validation.Field(&c.CassandraPrefix, validation.Required),
		validation.Field(&c.PostgresMaxStaleness, validation.Required, validation.Min(0)),
		validation.Field(&c.CassandraMaxStaleness, validation.Required, validation.Min(0)),
		validation.Field(&c.DNSServers, validation.Each(validation.By(validateHostPort))),
		validation.Field(&c.DNSTimeout, validation.Required),
		validation.Field(&c.DNSLifetime, validation.Required),
		validation.Field(&c.DNSRetryInterval, validation.Min(0)),
		validation.Field(&c.HTTPTimeout, validation.Required),
		validation.Field(&c.RunTimeout, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.SlackWebhook, is.URL),
		validation.Field(&c.PushgatewayURL, is.URL),
	)
}

func validatePriority(value interface{}) error {
	s, _ := value.(string)
	_, err := domain.ParsePriority(s)
	return err
}

func validateHostPort(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("must be a string")
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return errors.New("must be in host:port format")
	}
	return nil
}
