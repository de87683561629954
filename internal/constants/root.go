package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "hard75"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/hard75/hard75.db"
	Version            = "v0.1.0"

	// Program shape
	ProgramDays    = 75
	HabitCount     = 7
	MaxLabelLength = 100

	// Username rules
	UsernameMinLength = 3
	UsernameMaxLength = 20

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hard75-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "hard75-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.hard75"
	TrayExecutablePrefix   = "hard75-tray"

	// Environment variables
	EnvConfig       = "HARD75_CONFIG"
	EnvUser         = "HARD75_USER"
	EnvTimezone     = "HARD75_TZ"
	EnvAddr         = "HARD75_ADDR"
	EnvDBConnection = "HARD75_DB_CONNECTION"

	// Server defaults
	DefaultAddr = ":3375"
)

// Session States
const (
	StateTracker SessionState = iota
	StateEditReflection
	StateEditLabels
	StateConfirmReset
)
