package investment

//revive:disable

// InvestmentInput creates or updates a product. On update omitted fields
// are kept.
type InvestmentInput struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	MinAmount    *float64 `json:"min_amount" validate:"omitempty,gte=0"`
	TargetAmount *float64 `json:"target_amount" validate:"omitempty,gt=0"`
	ReturnRate   *string  `json:"return_rate" validate:"omitempty,max=32"`
	Duration     *string  `json:"duration" validate:"omitempty,max=64"`
	Status       *string  `json:"status" validate:"omitempty,oneof=ACTIVE CLOSED"`
}

type SetROIInput struct {
	ROI *float64 `json:"roi" validate:"required,gte=0"`
}

type SetStatusInput struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE COMPLETED CANCELLED"`
}
