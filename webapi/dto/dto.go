// Package dto holds the JSON shapes returned by the API.
package dto

import (
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/shopspring/decimal"
)

//revive:disable

func money(d decimal.Decimal) float64 { return d.InexactFloat64() }

type UserDTO struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Country       string    `json:"country,omitempty"`
	Role          string    `json:"role"`
	Balance       float64   `json:"balance"`
	ROI           float64   `json:"roi"`
	ReferralBonus float64   `json:"referral_bonus"`
	ReferralCount int       `json:"referral_count"`
	ReferralCode  string    `json:"referral_code"`
	CreatedAt     time.Time `json:"created_at"`
}

func User(u *domain.User) UserDTO {
	return UserDTO{
		ID:            u.ID.String(),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		Country:       u.Country,
		Role:          string(u.Role),
		Balance:       money(u.Balance),
		ROI:           money(u.ROI),
		ReferralBonus: money(u.ReferralBonus),
		ReferralCount: u.ReferralCount,
		ReferralCode:  u.ReferralCode,
		CreatedAt:     u.CreatedAt,
	}
}

type InvestmentDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MinAmount     float64   `json:"min_amount"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	ReturnRate    string    `json:"return_rate"`
	Duration      string    `json:"duration"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func Investment(i *domain.Investment) InvestmentDTO {
	return InvestmentDTO{
		ID:            i.ID.String(),
		Name:          i.Name,
		Description:   i.Description,
		MinAmount:     money(i.MinAmount),
		TargetAmount:  money(i.TargetAmount),
		CurrentAmount: money(i.CurrentAmount),
		ReturnRate:    i.ReturnRate,
		Duration:      i.Duration,
		Status:        string(i.Status),
		CreatedAt:     i.CreatedAt,
	}
}

type UserInvestmentDTO struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	InvestmentID     string         `json:"investment_id"`
	Amount           float64        `json:"amount"`
	ReturnAmount     float64        `json:"return_amount"`
	ROIAmount        float64        `json:"roi_amount"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	Status           string         `json:"status"`
	WithdrawalStatus string         `json:"withdrawal_status,omitempty"`
	Investment       *InvestmentDTO `json:"investment,omitempty"`
}

func UserInvestment(ui *domain.UserInvestment) UserInvestmentDTO {
	out := UserInvestmentDTO{
		ID:               ui.ID.String(),
		UserID:           ui.UserID.String(),
		InvestmentID:     ui.InvestmentID.String(),
		Amount:           money(ui.Amount),
		ReturnAmount:     money(ui.ReturnAmount),
		ROIAmount:        money(ui.ROIAmount),
		StartDate:        ui.StartDate,
		EndDate:          ui.EndDate,
		Status:           string(ui.Status),
		WithdrawalStatus: string(ui.WithdrawalStatus),
	}
	if ui.Investment != nil {
		inv := Investment(ui.Investment)
		out.Investment = &inv
	}
	return out
}

type DepositDTO struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	InvestmentID string         `json:"investment_id"`
	Amount       float64        `json:"amount"`
	Network      string         `json:"network"`
	Receipt      string         `json:"receipt"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	Investment   *InvestmentDTO `json:"investment,omitempty"`
	User         *UserDTO       `json:"user,omitempty"`
}

func Deposit(d *domain.Deposit) DepositDTO {
	out := DepositDTO{
		ID:           d.ID.String(),
		UserID:       d.UserID.String(),
		InvestmentID: d.InvestmentID.String(),
		Amount:       money(d.Amount),
		Network:      d.Network,
		Receipt:      d.Receipt,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
	}
	if d.Investment != nil {
		inv := Investment(d.Investment)
		out.Investment = &inv
	}
	if d.User != nil {
		u := User(d.User)
		out.User = &u
	}
	return out
}

type ApplicationDTO struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	InvestmentID string         `json:"investment_id"`
	Amount       float64        `json:"amount"`
	Note         string         `json:"note,omitempty"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	Investment   *InvestmentDTO `json:"investment,omitempty"`
	User         *UserDTO       `json:"user,omitempty"`
}

func Application(a *domain.Application) ApplicationDTO {
	out := ApplicationDTO{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		InvestmentID: a.InvestmentID.String(),
		Amount:       money(a.Amount),
		Note:         a.Note,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
	}
	if a.Investment != nil {
		inv := Investment(a.Investment)
		out.Investment = &inv
	}
	if a.User != nil {
		u := User(a.User)
		out.User = &u
	}
	return out
}

type DestinationDTO struct {
	Type          string `json:"type" form:"type" validate:"required,oneof=BANK WALLET bank wallet"`
	BankName      string `json:"bank_name,omitempty" form:"bank_name"`
	AccountName   string `json:"account_name,omitempty" form:"account_name"`
	AccountNumber string `json:"account_number,omitempty" form:"account_number"`
	WalletAddress string `json:"wallet_address,omitempty" form:"wallet_address"`
	Network       string `json:"network,omitempty" form:"network"`
}

func Destination(d domain.Destination) DestinationDTO {
	return DestinationDTO{
		Type:          string(d.Type),
		BankName:      d.BankName,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		WalletAddress: d.WalletAddress,
		Network:       d.Network,
	}
}

func (d DestinationDTO) Domain() domain.Destination {
	return domain.Destination{
		Type:          domain.DestinationType(d.Type),
		BankName:      d.BankName,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		WalletAddress: d.WalletAddress,
		Network:       d.Network,
	}
}

type WithdrawalDTO struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	UserInvestmentID string             `json:"user_investment_id"`
	Amount           float64            `json:"amount"`
	Destination      DestinationDTO     `json:"destination"`
	Status           string             `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	User             *UserDTO           `json:"user,omitempty"`
	UserInvestment   *UserInvestmentDTO `json:"user_investment,omitempty"`
}

func Withdrawal(w *domain.Withdrawal) WithdrawalDTO {
	out := WithdrawalDTO{
		ID:               w.ID.String(),
		UserID:           w.UserID.String(),
		UserInvestmentID: w.UserInvestmentID.String(),
		Amount:           money(w.Amount),
		Destination:      Destination(w.Destination),
		Status:           string(w.Status),
		CreatedAt:        w.CreatedAt,
	}
	if w.User != nil {
		u := User(w.User)
		out.User = &u
	}
	if w.UserInvestment != nil {
		ui := UserInvestment(w.UserInvestment)
		out.UserInvestment = &ui
	}
	return out
}

type ReferralWithdrawalDTO struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Amount      float64        `json:"amount"`
	Destination DestinationDTO `json:"destination"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	User        *UserDTO       `json:"user,omitempty"`
}

func ReferralWithdrawal(w *domain.ReferralWithdrawal) ReferralWithdrawalDTO {
	out := ReferralWithdrawalDTO{
		ID:          w.ID.String(),
		UserID:      w.UserID.String(),
		Amount:      money(w.Amount),
		Destination: Destination(w.Destination),
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
	}
	if w.User != nil {
		u := User(w.User)
		out.User = &u
	}
	return out
}

type TransferDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	BankName  string    `json:"bank_name"`
	Reference string    `json:"reference,omitempty"`
	Receipt   string    `json:"receipt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

func Transfer(t *domain.Transfer) TransferDTO {
	out := TransferDTO{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Amount:    money(t.Amount),
		BankName:  t.BankName,
		Reference: t.Reference,
		Receipt:   t.Receipt,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
	if t.User != nil {
		u := User(t.User)
		out.User = &u
	}
	return out
}

type NotificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func Notification(n *domain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type NewsDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

func News(n *domain.News) NewsDTO {
	return NewsDTO{
		ID:        n.ID.String(),
		Title:     n.Title,
		Summary:   n.Summary,
		Body:      n.Body,
		ImageURL:  n.ImageURL,
		Published: n.Published,
		CreatedAt: n.CreatedAt,
	}
}

type MessageDTO struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func Message(m *domain.Message) MessageDTO {
	out := MessageDTO{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
	if m.UserID != nil {
		id := m.UserID.String()
		out.UserID = &id
	}
	return out
}

type WalletDTO struct {
	ID      string `json:"id"`
	Network string `json:"network"`
	Address string `json:"address"`
	Label   string `json:"label,omitempty"`
	Active  bool   `json:"active"`
}

func Wallet(w *domain.Wallet) WalletDTO {
	return WalletDTO{ID: w.ID.String(), Network: w.Network, Address: w.Address, Label: w.Label, Active: w.Active}
}

type StatsDTO struct {
	Users               int64   `json:"users"`
	PendingDeposits     int64   `json:"pending_deposits"`
	PendingWithdrawals  int64   `json:"pending_withdrawals"`
	PendingApplications int64   `json:"pending_applications"`
	PendingTransfers    int64   `json:"pending_transfers"`
	ConfirmedDeposits   float64 `json:"confirmed_deposits"`
	OutstandingROI      float64 `json:"outstanding_roi"`
}

func Stats(s *domain.Stats) StatsDTO {
	return StatsDTO{
		Users:               s.Users,
		PendingDeposits:     s.PendingDeposits,
		PendingWithdrawals:  s.PendingWithdrawals,
		PendingApplications: s.PendingApplications,
		PendingTransfers:    s.PendingTransfers,
		ConfirmedDeposits:   money(s.ConfirmedDeposits),
		OutstandingROI:      money(s.OutstandingROI),
	}
}
