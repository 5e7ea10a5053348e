package entities

// UserProfile is the profile shape returned to the client after sign-in.
type UserProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Provider      string `json:"provider,omitempty"`
}

type GoogleSignInRequest struct {
	IDToken string `json:"idToken"`
}

type SyncProfileRequest struct {
	AccessToken string `json:"accessToken"`
}

type RegisterProfileRequest struct {
	AccessToken string `json:"accessToken"`
	FirstName   string `json:"firstName"`
	FamilyName  string `json:"familyName"`
	Phone       string `json:"phone"`
	FullName    string `json:"fullName"`
}
