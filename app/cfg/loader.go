package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./data/geeknews.db" description:"Path to the SQLite database file"`
	UploadsDir string `long:"uploads-dir" env:"UPLOADS_DIR" default:"./public/uploads" description:"Directory for uploaded article images"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://news.example.com)"`
	SectionsFile string `long:"sections-file" env:"SECTIONS_FILE" description:"Optional YAML file overriding the built-in section catalog"`

	// Administrator seed account
	AdminEmail    string `long:"admin-email" env:"ADMIN_EMAIL" default:"admin@geek.news" description:"Email for the seeded administrator account"`
	AdminPassword string `long:"admin-password" env:"ADMIN_PASSWORD" default:"admin123" description:"Password for the seeded administrator account (rotate in production)"`

	SessionTTLHours int `long:"session-ttl-hours" env:"SESSION_TTL_HOURS" default:"24" description:"Session lifetime in hours"`

	// Newsletter delivery
	MailWorkerCount    int    `long:"mail-worker-count" env:"MAIL_WORKER_COUNT" default:"10" description:"Number of concurrent workers for campaign delivery"`
	MailSendTimeoutSec int    `long:"mail-send-timeout" env:"MAIL_SEND_TIMEOUT" default:"30" description:"Per-recipient send timeout in seconds"`
	MailFrom           string `long:"mail-from" env:"MAIL_FROM" default:"no-reply@geek.news" description:"From address for newsletter campaigns"`
	SMTPHost           string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP host (empty enables the sandbox transport)"`
	SMTPPort           int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP port"`
	SMTPUser           string `long:"smtp-user" env:"SMTP_USER" description:"SMTP username"`
	SMTPPassword       string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
	SMTPStartTLS       bool   `long:"smtp-starttls" env:"SMTP_STARTTLS" description:"Use STARTTLS for SMTP connections"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Geek News/1.0" description:"User agent string for outbound HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:             raw.DBPath,
		UploadsDir:         raw.UploadsDir,
		Port:               raw.Port,
		BaseUrl:            raw.BaseUrl,
		SectionsFile:       raw.SectionsFile,
		AdminEmail:         raw.AdminEmail,
		AdminPassword:      raw.AdminPassword,
		SessionTTLHours:    raw.SessionTTLHours,
		MailWorkerCount:    raw.MailWorkerCount,
		MailSendTimeoutSec: raw.MailSendTimeoutSec,
		MailFrom:           raw.MailFrom,
		SMTPHost:           raw.SMTPHost,
		SMTPPort:           raw.SMTPPort,
		SMTPUser:           raw.SMTPUser,
		SMTPPassword:       raw.SMTPPassword,
		SMTPStartTLS:       raw.SMTPStartTLS,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
