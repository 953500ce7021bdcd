package consts

const (
	TokenBlacklistKey  = "auth:blacklist:"
	VerificationKey    = "auth:code:"
	OTPChallengeKey    = "auth:otp:"
	ActivationTokenKey = "auth:activate:"
	PasswordResetKey   = "auth:reset:"
	EmailChangeKey     = "auth:email-change:"
	CategoryListKey    = "cache:categories:all"
	EmailRetryKey      = "queue:email:retry"
)

const (
	SearchReindexLock = "lock:search:reindex"
	LogRetentionLock  = "lock:logs:retention"
)
