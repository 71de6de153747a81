package cfg

type Cfg struct {
	// Storage configuration
	DBPath     string
	UploadsDir string

	// Application configuration
	Port         string
	BaseUrl      string
	SectionsFile string

	// Seeded administrator account (rotate in any real deployment)
	AdminEmail    string
	AdminPassword string

	SessionTTLHours int

	// Newsletter delivery
	MailWorkerCount    int
	MailSendTimeoutSec int
	MailFrom           string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	SMTPStartTLS       bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
