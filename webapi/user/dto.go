package user

//revive:disable

// UpdateProfileInput lists the profile fields a user may change.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=40"`
	Country   *string `json:"country" validate:"omitempty,max=100"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// SetBalancesInput is an admin override. Omitted fields are kept.
type SetBalancesInput struct {
	Balance       *float64 `json:"balance" validate:"omitempty,gte=0"`
	ROI           *float64 `json:"roi" validate:"omitempty,gte=0"`
	ReferralBonus *float64 `json:"referral_bonus" validate:"omitempty,gte=0"`
}
