package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FirstName           string          `gorm:"size:100;not null"`
	LastName            string          `gorm:"size:100"`
	Email               string          `gorm:"uniqueIndex;not null;size:255"`
	Phone               string          `gorm:"size:50"`
	Country             string          `gorm:"size:100"`
	Password            string          `gorm:"not null"`
	Role                string          `gorm:"size:16;not null;default:USER;index"`
	Balance             decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	ROI                 decimal.Decimal `gorm:"column:roi;type:decimal(20,8);not null;default:0"`
	ReferralBonus       decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	ReferralCount       int             `gorm:"not null;default:0"`
	ReferralCode        string          `gorm:"uniqueIndex;size:16;not null"`
	ReferredBy          *uuid.UUID      `gorm:"type:uuid;index"`
	ResetTokenHash      string          `gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Investment is a product listing.
type Investment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"size:200;not null"`
	Description   string          `gorm:"type:text"`
	MinAmount     decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	ReturnRate    string          `gorm:"size:32;not null"`
	Duration      string          `gorm:"size:64;not null"`
	Status        string          `gorm:"size:16;not null;default:ACTIVE;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type UserInvestment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvestmentID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DepositID        *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	ApplicationID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ReturnAmount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ROIAmount        decimal.Decimal `gorm:"column:roi_amount;type:decimal(20,8);not null;default:0"`
	StartDate        time.Time       `gorm:"not null"`
	EndDate          time.Time       `gorm:"not null;index"`
	Status           string          `gorm:"size:16;not null;index"`
	WithdrawalStatus string          `gorm:"size:16;not null;default:''"`
	MaturityNotified bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Investment *Investment `gorm:"foreignKey:InvestmentID"`
}

type Deposit struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvestmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Network      string          `gorm:"size:64;not null"`
	Receipt      string          `gorm:"size:512"`
	Status       string          `gorm:"size:16;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Investment *Investment `gorm:"foreignKey:InvestmentID"`
	User       *User       `gorm:"foreignKey:UserID"`
}

type Application struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvestmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Note         string          `gorm:"type:text"`
	Status       string          `gorm:"size:16;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Investment *Investment `gorm:"foreignKey:InvestmentID"`
	User       *User       `gorm:"foreignKey:UserID"`
}

// Destination is embedded in both withdrawal tables with a dest_ prefix.
type Destination struct {
	Type          string `gorm:"size:16"`
	BankName      string `gorm:"size:128"`
	AccountName   string `gorm:"size:128"`
	AccountNumber string `gorm:"size:64"`
	WalletAddress string `gorm:"size:256"`
	Network       string `gorm:"size:64"`
}

type Withdrawal struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserInvestmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Destination      Destination     `gorm:"embedded;embeddedPrefix:dest_"`
	Status           string          `gorm:"size:16;not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User           *User           `gorm:"foreignKey:UserID"`
	UserInvestment *UserInvestment `gorm:"foreignKey:UserInvestmentID"`
}

type ReferralWithdrawal struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Destination Destination     `gorm:"embedded;embeddedPrefix:dest_"`
	Status      string          `gorm:"size:16;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// RoiTransaction is the append-only ROI audit trail.
type RoiTransaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserInvestmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	WithdrawalID     *uuid.UUID      `gorm:"type:uuid"`
	Type             string          `gorm:"size:16;not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	RoiBefore        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	RoiAfter         decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	UserRoiBefore    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	UserRoiAfter     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt        time.Time
}

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"size:32;not null"`
	Title     string    `gorm:"size:200;not null"`
	Message   string    `gorm:"type:text"`
	Read      bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type Message struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Name      string     `gorm:"size:200;not null"`
	Email     string     `gorm:"size:255;not null"`
	Subject   string     `gorm:"size:200"`
	Body      string     `gorm:"type:text;not null"`
	Read      bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Wallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Network   string    `gorm:"size:64;not null"`
	Address   string    `gorm:"size:256;not null"`
	Label     string    `gorm:"size:128"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Transfer struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	BankName  string          `gorm:"size:128"`
	Reference string          `gorm:"size:128"`
	Receipt   string          `gorm:"size:512"`
	Status    string          `gorm:"size:16;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

type News struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Summary   string    `gorm:"size:500"`
	Body      string    `gorm:"type:text"`
	ImageURL  string    `gorm:"column:image_url;size:512"`
	Published bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (News) TableName() string { return "news" }

// Models lists every table in creation order. Used by AutoMigrate on sqlite.
func Models() []any {
	return []any{
		&User{},
		&Investment{},
		&UserInvestment{},
		&Deposit{},
		&Application{},
		&Withdrawal{},
		&ReferralWithdrawal{},
		&RoiTransaction{},
		&Notification{},
		&Message{},
		&Wallet{},
		&Transfer{},
		&News{},
	}
}
