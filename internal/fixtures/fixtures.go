// Package fixtures seeds sqlite backed stores for service and HTTP tests.
package fixtures

import (
	"context"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/invest/infra/repository"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

// PNG and PDF carry the magic bytes the upload policy sniffs for.
var (
	PNG = []byte("\x89PNG\r\n\x1a\nreceipt")
	PDF = []byte("%PDF-1.4\n%%EOF\n")
)

// NewUoW returns a unit of work over a fresh migrated database.
func NewUoW(tb testing.TB) (*infrarepo.UoW, *gorm.DB) {
	tb.Helper()
	db := testutils.NewTestDB(tb, infrarepo.Models()...)
	return infrarepo.NewUoW(db), db
}

// User seeds a user with DefaultPassword.
func User(tb testing.TB, uow repository.UnitOfWork, email string, role domain.Role) *domain.User {
	tb.Helper()
	u, err := domain.NewUser("Test", "User", email, DefaultPassword)
	require.NoError(tb, err)
	u.Role = role
	require.NoError(tb, uow.UserRepository().Create(context.Background(), u))
	return u
}

// Investment seeds an ACTIVE product with min 100, rate 10% and the given
// duration.
func Investment(tb testing.TB, uow repository.UnitOfWork, duration string) *domain.Investment {
	tb.Helper()
	now := time.Now().UTC()
	inv := &domain.Investment{
		ID:            uuid.New(),
		Name:          "Growth Fund",
		Description:   "Balanced growth",
		MinAmount:     decimal.NewFromInt(100),
		TargetAmount:  decimal.NewFromInt(100000),
		CurrentAmount: decimal.Zero,
		ReturnRate:    "10%",
		Duration:      duration,
		Status:        domain.InvestmentActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(tb, uow.InvestmentRepository().Create(context.Background(), inv))
	return inv
}

// UserInvestment seeds an ACTIVE commitment holding roi of accrued ROI and
// credits the same amount to the user's ROI.
func UserInvestment(
	tb testing.TB,
	uow repository.UnitOfWork,
	u *domain.User,
	inv *domain.Investment,
	amount, roi decimal.Decimal,
	start time.Time,
) *domain.UserInvestment {
	tb.Helper()
	ctx := context.Background()
	ui := domain.NewUserInvestment(u.ID, inv, amount, start)
	ui.ROIAmount = roi
	require.NoError(tb, uow.UserInvestmentRepository().Create(ctx, ui))

	fresh, err := uow.UserRepository().Get(ctx, u.ID)
	require.NoError(tb, err)
	fresh.ROI = fresh.ROI.Add(roi)
	require.NoError(tb, uow.UserRepository().UpdateLedger(ctx, fresh))
	*u = *fresh
	return ui
}

// Notifications returns every notification of userID, newest first.
func Notifications(tb testing.TB, uow repository.UnitOfWork, userID uuid.UUID) []*domain.Notification {
	tb.Helper()
	list, _, err := uow.NotificationRepository().ListByUser(
		context.Background(), userID, repository.Pagination{PageSize: repository.MaxPageSize})
	require.NoError(tb, err)
	return list
}

// Dec is shorthand for decimal.RequireFromString in tables.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
