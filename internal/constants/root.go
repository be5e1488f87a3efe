package constants

import "time"

const (
	AppName            = "dayone"
	DefaultKeyringUser = "backend-connection"
	DefaultConfigPath  = "~/.config/dayone/dayone.db"
	Version            = "v0.3.0"

	// SnapshotKey is the single well-known key the snapshot is stored under
	SnapshotKey = "dayone:snapshot"

	// DefaultTransitionDelay is how long the UI waits between a day being
	// satisfied and moving the current day forward
	DefaultTransitionDelay = 800 * time.Millisecond

	// MinDay is the first day of every curriculum
	MinDay = 1

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "dayone-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.dayone"
	TrayExecutablePrefix   = "dayone-tray"

	// Backend URL schemes and suffixes
	SchemePostgres   = "postgres://"
	SchemePostgresQL = "postgresql://"
	SchemeRedis      = "redis://"
	SchemeRediss     = "rediss://"
	SchemeMemory     = "memory:"
	SuffixSQLite     = ".db"

	// Deferred task names
	TaskDayAdvance = "day-advance"
	TaskBanner     = "banner"

	// BannerDuration is how long the TUI shows a confirmation banner
	BannerDuration = 3 * time.Second
)
