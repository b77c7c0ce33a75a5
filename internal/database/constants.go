package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// SQLiteBusyTimeoutMillis bounds how long a writer waits on a locked database file
	SQLiteBusyTimeoutMillis = 5000
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToOpenSQLite       = "failed to open sqlite database"
	ErrMsgFailedToRunMigrations    = "failed to run migrations"
	ErrMsgUnsupportedDialect       = "unsupported migration dialect"
	ErrMsgSQLiteForeignKeysOff     = "sqlite foreign keys are disabled"
	ErrMsgFailedToCreateDataFolder = "failed to create database directory"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)

// Error Messages - Store Operations (shared by the postgres and sqlite stores)
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"

	ErrMsgFailedToGetProfile     = "failed to get profile"
	ErrMsgFailedToUpsertProfile  = "failed to upsert profile"
	ErrMsgFailedToEnsureProfile  = "failed to ensure profile"
	ErrMsgFailedToLockProfile    = "failed to lock profile"
	ErrMsgFailedToUpdateBalances = "failed to update profile balances"

	ErrMsgFailedToClaimMilestone   = "failed to claim milestone"
	ErrMsgFailedToCountMilestones  = "failed to count milestones"
	ErrMsgFailedToClaimAchievement = "failed to claim achievement"

	ErrMsgFailedToAddArtifact    = "failed to add artifact"
	ErrMsgFailedToGetArtifact    = "failed to get artifact"
	ErrMsgFailedToListArtifacts  = "failed to list artifacts"
	ErrMsgFailedToEquipArtifact  = "failed to update artifact equip state"
	ErrMsgFailedToLogWish        = "failed to log wish"
	ErrMsgFailedToGetPityState   = "failed to get pity state"
	ErrMsgFailedToSetPityState   = "failed to set pity state"
	ErrMsgFailedToGetTalentLevel = "failed to get talent level"
	ErrMsgFailedToSetTalentLevel = "failed to set talent level"
	ErrMsgFailedToListTalents    = "failed to list talent levels"

	ErrMsgFailedToSetCompletion   = "failed to set task completion"
	ErrMsgFailedToGetCompletions  = "failed to get completions"
	ErrMsgFailedToCountCompletion = "failed to count completions"

	ErrMsgFailedToScanRow   = "failed to scan row"
	ErrMsgRowIterationError = "row iteration error"
)
