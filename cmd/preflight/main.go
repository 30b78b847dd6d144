// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/opscheck/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "✖", err)
		os.Exit(1)
	}
	if !run(config.FromEnv()) {
		os.Exit(1)
	}
}

// run prints one line per finding and reports whether the checks can run.
func run(cfg config.Config) bool {
	passed := true
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		passed = false
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	if err := cfg.Validate(); err != nil {
		fail("configuration invalid: " + err.Error())
	}

	if cfg.GenieKey == "" {
		fail("GENIE_KEY is empty (Opsgenie will reject alerts).")
	} else {
		ok("GENIE_KEY present, team=" + cfg.GenieTeam)
	}
	if cfg.MailgunKey == "" || cfg.MailgunDomain == "" {
		fail("MAIL_GUN_KEY or MAIL_GUN_DOMAIN is empty (escalation emails will fail).")
	} else {
		ok("Mailgun domain=" + cfg.MailgunDomain)
	}
	if len(cfg.Recipients) == 0 {
		fail("EMAIL_RECIPIENTS is empty.")
	} else {
		ok("EMAIL_RECIPIENTS=" + strings.Join(cfg.Recipients, ","))
	}

	switch cfg.StorageBackend {
	case config.BackendS3:
		if cfg.AWSAccessKey == "" || cfg.AWSSecretKey == "" {
			warn("AWS_ACCESS_KEY/AWS_SECRET_ACCESS_KEY empty; the default AWS credential chain will be used.")
		}
	case config.BackendGCS:
		if cfg.GCSCredentialsFile == "" {
			warn("GCS_CREDENTIALS_FILE empty; application default credentials will be used.")
		}
	}
	ok(fmt.Sprintf("storage=%s bucket=%s", cfg.StorageBackend, cfg.Bucket))

	if cfg.NodeIP == "" {
		warn("NODE_IP is empty; DNS alerts will not say which node failed.")
	} else {
		ok("NODE_IP=" + cfg.NodeIP)
	}
	if cfg.RunTimeout == 0 {
		warn("RUN_TIMEOUT is 0; runs have no overall deadline.")
	}

	if passed {
		ok("preflight passed")
	}
	return passed
}
