package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hamed0406/opscheck/internal/domain"
)

const (
	BackendS3  = "s3"
	BackendGCS = "gcs"
)

type Config struct {
	// Incident alerting (Opsgenie)
	GenieKey  string
	GenieTeam string
	GenieURL  string

	// Transactional email (Mailgun)
	MailgunKey    string
	MailgunDomain string
	MailgunAPI    string // base URL, the domain and "/messages" are appended
	EmailFrom     string
	Recipients    []string

	// Shared alert payload
	AlertPriority string
	AlertTags     []string
	AlertEntity   string

	// Object storage
	StorageBackend     string // "s3" | "gcs"
	Bucket             string
	S3Region           string
	S3Endpoint         string // empty means AWS
	AWSAccessKey       string
	AWSSecretKey       string
	GCSCredentialsFile string
	GCSEndpoint        string

	// Backup targets
	PostgresPrefix        string
	PostgresMaxStaleness  time.Duration
	CassandraPrefix       string
	CassandraMaxStaleness time.Duration

	// DNS
	NodeIP           string
	DNSServers       []string // host:port, empty means /etc/resolv.conf
	DNSTimeout       time.Duration
	DNSLifetime      time.Duration
	DNSRetryInterval time.Duration

	// Runtime
	HTTPTimeout    time.Duration
	RunTimeout     time.Duration // 0 disables the overall deadline
	LogDir         string        // empty logs to stdout only
	LogLevel       string
	SlackWebhook   string
	PushgatewayURL string
}

// LoadDotEnv reads an optional .env file. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func FromEnv() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GENIE_TEAM", "24_7 MontelCare")
	v.SetDefault("GENIE_URL", "https://api.opsgenie.com/v2/alerts")
	v.SetDefault("MAIL_GUN_API", "https://api.mailgun.net/v2")
	v.SetDefault("EMAIL_FROM", "doesnotreply@montel.fi")
	v.SetDefault("ALERT_PRIORITY", string(domain.P1))
	v.SetDefault("ALERT_TAGS", "PM Customer")
	v.SetDefault("ALERT_ENTITY", "PackageMedia")

	v.SetDefault("STORAGE_BACKEND", BackendS3)
	v.SetDefault("S3_BUCKET", "iddatabase2backup")
	v.SetDefault("S3_REGION", "eu-north-1")
	v.SetDefault("POSTGRES_S3_PREFIX", "iddatabase-pro/snapshots/")
	v.SetDefault("POSTGRES_MAX_STALENESS", "1h15m")
	v.SetDefault("CASSANDRA_S3_PREFIX", "cassandra-pro/iddatabase/cassandra/pmid/97c9af/")
	v.SetDefault("CASSANDRA_MAX_STALENESS", "24h15m")

	// resolver defaults follow the stock dnspython resolver the job used to run on
	v.SetDefault("DNS_TIMEOUT", "2s")
	v.SetDefault("DNS_LIFETIME", "5s")
	v.SetDefault("DNS_RETRY_INTERVAL", "60s")

	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("RUN_TIMEOUT", "0s")
	v.SetDefault("LOG_LEVEL", "info")

	return Config{
		GenieKey:  v.GetString("GENIE_KEY"),
		GenieTeam: v.GetString("GENIE_TEAM"),
		GenieURL:  v.GetString("GENIE_URL"),

		MailgunKey:    v.GetString("MAIL_GUN_KEY"),
		MailgunDomain: v.GetString("MAIL_GUN_DOMAIN"),
		MailgunAPI:    strings.TrimRight(v.GetString("MAIL_GUN_API"), "/"),
		EmailFrom:     v.GetString("EMAIL_FROM"),
		Recipients:    splitList(v.GetString("EMAIL_RECIPIENTS")),

		AlertPriority: v.GetString("ALERT_PRIORITY"),
		AlertTags:     splitList(v.GetString("ALERT_TAGS")),
		AlertEntity:   v.GetString("ALERT_ENTITY"),

		StorageBackend:     strings.ToLower(v.GetString("STORAGE_BACKEND")),
		Bucket:             v.GetString("S3_BUCKET"),
		S3Region:           v.GetString("S3_REGION"),
		S3Endpoint:         v.GetString("S3_ENDPOINT"),
		AWSAccessKey:       v.GetString("AWS_ACCESS_KEY"),
		AWSSecretKey:       v.GetString("AWS_SECRET_ACCESS_KEY"),
		GCSCredentialsFile: v.GetString("GCS_CREDENTIALS_FILE"),
		GCSEndpoint:        v.GetString("GCS_ENDPOINT"),

		PostgresPrefix:        v.GetString("POSTGRES_S3_PREFIX"),
		PostgresMaxStaleness:  v.GetDuration("POSTGRES_MAX_STALENESS"),
		CassandraPrefix:       v.GetString("CASSANDRA_S3_PREFIX"),
		CassandraMaxStaleness: v.GetDuration("CASSANDRA_MAX_STALENESS"),

		NodeIP:           v.GetString("NODE_IP"),
		DNSServers:       splitList(v.GetString("DNS_SERVERS")),
		DNSTimeout:       v.GetDuration("DNS_TIMEOUT"),
		DNSLifetime:      v.GetDuration("DNS_LIFETIME"),
		DNSRetryInterval: v.GetDuration("DNS_RETRY_INTERVAL"),

		HTTPTimeout:    v.GetDuration("HTTP_TIMEOUT"),
		RunTimeout:     v.GetDuration("RUN_TIMEOUT"),
		LogDir:         v.GetString("LOG_DIR"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		SlackWebhook:   v.GetString("SLACK_WEBHOOK"),
		PushgatewayURL: v.GetString("PUSHGATEWAY_URL"),
	}
}

// BackupTarget returns the storage prefix and allowed staleness for kind.
func (c Config) BackupTarget(kind domain.DBKind) domain.BackupTarget {
	if kind == domain.DBPostgres {
		return domain.BackupTarget{Kind: kind, Prefix: c.PostgresPrefix, MaxStaleness: c.PostgresMaxStaleness}
	}
	return domain.BackupTarget{Kind: domain.DBCassandra, Prefix: c.CassandraPrefix, MaxStaleness: c.CassandraMaxStaleness}
}

// Responders is the single team every alert is routed to.
func (c Config) Responders() []domain.Responder {
	return []domain.Responder{{Name: c.GenieTeam, Type: domain.ResponderTeam}}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
