package dto

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MfaCode  string `json:"mfa_code,omitempty"`
}
