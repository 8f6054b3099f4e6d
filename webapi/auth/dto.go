package auth

//revive:disable

type SignupInput struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	Phone        string `json:"phone" validate:"max=40"`
	Country      string `json:"country" validate:"max=100"`
	ReferralCode string `json:"referral_code" validate:"max=32"`
	CaptchaToken string `json:"captcha_token"`
}

// SigninInput represents the request body for user authentication.
type SigninInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
