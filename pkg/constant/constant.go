package constant

const (
	DefaultAccessTokenExpirySec  = 3600
	DefaultRefreshTokenExpirySec = 604800
	DefaultBcryptRounds          = 12
	DefaultPasswordMinLength     = 8

	// Keys of the persisted session record. All three are written and
	// cleared together; partial presence is treated as a corrupt record.
	SessionKeyAccessToken  = "auth_token"
	SessionKeyRefreshToken = "auth_refresh_token"
	SessionKeyUser         = "auth_user"
)
