package auth

// TokenPair bundles the tokens returned by a successful sign-in.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
