package bootstrap

// Log messages for startup
const (
	LogMsgStarting            = "Starting TinyWins"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgStoreOpened         = "Progression store opened"
	LogMsgStoreClosed         = "Progression store closed"
	LogMsgStoreCloseFailed    = "Failed to close progression store"
	LogMsgCatalogLoaded       = "Artifact catalog loaded"
)

// Error messages
const (
	ErrMsgFailedOpenSQLite   = "failed to open sqlite store"
	ErrMsgFailedOpenPostgres = "failed to open postgres store"
	ErrMsgUnsupportedDriver  = "unsupported storage driver"
)

// DefaultPerkCacheSize bounds the parsed artifact payload cache
const DefaultPerkCacheSize = 512
