package constants

// Redis key formats
const (
	KeyOTP         = "otp:%s"           // Format: otp:{phone_number}
	KeyOTPAttempts = "otp:attempts:%s"  // Format: otp:attempts:{phone_number}
	KeyRateLimit   = "rate:limit:%s:%s" // Format: rate:limit:{operation}:{identifier}
	KeyBlacklist   = "blacklist:%s"     // Format: blacklist:{token_sha256}
)

// Rate limit operation identifiers
const (
	RateOTPRequest   = "otp-request"
	RateOTPVerify    = "otp-verify"
	RateTokenRefresh = "token-refresh"
)
