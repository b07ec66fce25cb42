package constants

const (
	MAX_PAGE_SIZE                = 100
	MAX_EVENTS_PER_BATCH         = 500
	DEFAULT_OFFSET               = uint64(0)
	DEFAULT_EVENTS_LIMIT         = 100
	DEFAULT_TRANSACTIONS_LIMIT   = 50
	DEFAULT_TOKENS_LIMIT         = 20
	DEFAULT_NOTIFICATIONS_LIMIT  = 20
	DEFAULT_TOTAL_SUPPLY         = "1000000"
	DEFAULT_MAX_TOKENS_PER_FAN   = "1000"
	WELCOME_NOTIFICATION_TITLE   = "Welcome to InOrbyt!"
	WELCOME_NOTIFICATION_MESSAGE = "Your account has been created successfully."
)
