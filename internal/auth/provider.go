package auth

// AuthUser is the provider-neutral view of an authenticated account
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the token bundle handed back to the client
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Provider abstracts the account service: the hosted auth service in
// production, or the local credential store when none is configured.
type Provider interface {
	SignUp(email, password, name string) (*AuthUser, *Session, error)
	SignIn(email, password string) (*AuthUser, *Session, error)
	SignOut(accessToken string) error
}
