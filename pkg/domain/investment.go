package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentStatus tells whether a product accepts new funds.
type InvestmentStatus string

const (
	InvestmentActive InvestmentStatus = "ACTIVE"
	InvestmentClosed InvestmentStatus = "CLOSED"
)

// Investment is a product listing users can put money into.
type Investment struct {
	ID            uuid.UUID
	Name          string
	Description   string
	MinAmount     decimal.Decimal
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	ReturnRate    string
	Duration      string
	Status        InvestmentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanAccept checks that amount may be committed to the investment.
func (i *Investment) CanAccept(amount decimal.Decimal) error {
	if i.Status != InvestmentActive {
		return ErrInvestmentClosed
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.LessThan(i.MinAmount) {
		return fmt.Errorf("minimum is %s: %w", i.MinAmount.String(), ErrBelowMinimum)
	}
	return nil
}

// Fund records committed capital. currentAmount never decreases.
func (i *Investment) Fund(amount decimal.Decimal) {
	if amount.IsPositive() {
		i.CurrentAmount = i.CurrentAmount.Add(amount)
	}
}

// Terms computes the end date and the amount returned at maturity for a
// commitment of amount starting at start.
func (i *Investment) Terms(amount decimal.Decimal, start time.Time) (time.Time, decimal.Decimal) {
	return EndDate(start, i.Duration), ReturnAmount(amount, i.ReturnRate)
}

var durationPattern = regexp.MustCompile(`(?i)(\d+)\s*(seconds?|secs?|minutes?|mins?|hours?|hrs?|days?|weeks?|months?|years?|yrs?)\b`)

// DefaultTermMonths is used when a duration cannot be parsed.
const DefaultTermMonths = 6

// EndDate adds a free text duration such as "6 Months" or "2 weeks" to
// start. Months and years use calendar arithmetic.
func EndDate(start time.Time, duration string) time.Time {
	m := durationPattern.FindStringSubmatch(duration)
	if m == nil {
		return start.AddDate(0, DefaultTermMonths, 0)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return start.AddDate(0, DefaultTermMonths, 0)
	}
	unit := strings.ToLower(m[2])
	switch {
	case strings.HasPrefix(unit, "sec"):
		return start.Add(time.Duration(n) * time.Second)
	case strings.HasPrefix(unit, "min"):
		return start.Add(time.Duration(n) * time.Minute)
	case strings.HasPrefix(unit, "h"):
		return start.Add(time.Duration(n) * time.Hour)
	case strings.HasPrefix(unit, "day"):
		return start.AddDate(0, 0, n)
	case strings.HasPrefix(unit, "week"):
		return start.AddDate(0, 0, 7*n)
	case strings.HasPrefix(unit, "month"):
		return start.AddDate(0, n, 0)
	default:
		return start.AddDate(n, 0, 0)
	}
}

// ParseReturnRate reads a percentage such as "70%" or " 12.5 % ".
// Unparsable input yields zero.
func ParseReturnRate(rate string) decimal.Decimal {
	s := strings.ReplaceAll(rate, "%", "")
	s = strings.Join(strings.Fields(s), "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ReturnAmount is amount × (1 + rate/100).
func ReturnAmount(amount decimal.Decimal, rate string) decimal.Decimal {
	r := ParseReturnRate(rate).Div(decimal.NewFromInt(100))
	return amount.Mul(decimal.NewFromInt(1).Add(r))
}
