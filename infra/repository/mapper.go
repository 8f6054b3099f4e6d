package repository

import "github.com/amirasaad/invest/pkg/domain"

func toUserModel(u *domain.User) *User {
	return &User{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Phone:               u.Phone,
		Country:             u.Country,
		Password:            u.Password,
		Role:                string(u.Role),
		Balance:             u.Balance,
		ROI:                 u.ROI,
		ReferralBonus:       u.ReferralBonus,
		ReferralCount:       u.ReferralCount,
		ReferralCode:        u.ReferralCode,
		ReferredBy:          u.ReferredBy,
		ResetTokenHash:      u.ResetTokenHash,
		ResetTokenExpiresAt: u.ResetTokenExpiresAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func toUserDomain(m *User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:                  m.ID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Phone:               m.Phone,
		Country:             m.Country,
		Password:            m.Password,
		Role:                domain.Role(m.Role),
		Balance:             m.Balance,
		ROI:                 m.ROI,
		ReferralBonus:       m.ReferralBonus,
		ReferralCount:       m.ReferralCount,
		ReferralCode:        m.ReferralCode,
		ReferredBy:          m.ReferredBy,
		ResetTokenHash:      m.ResetTokenHash,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toInvestmentModel(i *domain.Investment) *Investment {
	return &Investment{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		MinAmount:     i.MinAmount,
		TargetAmount:  i.TargetAmount,
		CurrentAmount: i.CurrentAmount,
		ReturnRate:    i.ReturnRate,
		Duration:      i.Duration,
		Status:        string(i.Status),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toInvestmentDomain(m *Investment) *domain.Investment {
	if m == nil {
		return nil
	}
	return &domain.Investment{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		MinAmount:     m.MinAmount,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		ReturnRate:    m.ReturnRate,
		Duration:      m.Duration,
		Status:        domain.InvestmentStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserInvestmentModel(ui *domain.UserInvestment) *UserInvestment {
	return &UserInvestment{
		ID:               ui.ID,
		UserID:           ui.UserID,
		InvestmentID:     ui.InvestmentID,
		DepositID:        ui.DepositID,
		ApplicationID:    ui.ApplicationID,
		Amount:           ui.Amount,
		ReturnAmount:     ui.ReturnAmount,
		ROIAmount:        ui.ROIAmount,
		StartDate:        ui.StartDate,
		EndDate:          ui.EndDate,
		Status:           string(ui.Status),
		WithdrawalStatus: string(ui.WithdrawalStatus),
		MaturityNotified: ui.MaturityNotified,
		CreatedAt:        ui.CreatedAt,
		UpdatedAt:        ui.UpdatedAt,
	}
}

func toUserInvestmentDomain(m *UserInvestment) *domain.UserInvestment {
	if m == nil {
		return nil
	}
	return &domain.UserInvestment{
		ID:               m.ID,
		UserID:           m.UserID,
		InvestmentID:     m.InvestmentID,
		DepositID:        m.DepositID,
		ApplicationID:    m.ApplicationID,
		Amount:           m.Amount,
		ReturnAmount:     m.ReturnAmount,
		ROIAmount:        m.ROIAmount,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           domain.UserInvestmentStatus(m.Status),
		WithdrawalStatus: domain.PayoutState(m.WithdrawalStatus),
		MaturityNotified: m.MaturityNotified,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Investment:       toInvestmentDomain(m.Investment),
	}
}

func toDepositModel(d *domain.Deposit) *Deposit {
	return &Deposit{
		ID:           d.ID,
		UserID:       d.UserID,
		InvestmentID: d.InvestmentID,
		Amount:       d.Amount,
		Network:      d.Network,
		Receipt:      d.Receipt,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDepositDomain(m *Deposit) *domain.Deposit {
	return &domain.Deposit{
		ID:           m.ID,
		UserID:       m.UserID,
		InvestmentID: m.InvestmentID,
		Amount:       m.Amount,
		Network:      m.Network,
		Receipt:      m.Receipt,
		Status:       domain.FundingStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Investment:   toInvestmentDomain(m.Investment),
		User:         toUserDomain(m.User),
	}
}

func toApplicationModel(a *domain.Application) *Application {
	return &Application{
		ID:           a.ID,
		UserID:       a.UserID,
		InvestmentID: a.InvestmentID,
		Amount:       a.Amount,
		Note:         a.Note,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toApplicationDomain(m *Application) *domain.Application {
	return &domain.Application{
		ID:           m.ID,
		UserID:       m.UserID,
		InvestmentID: m.InvestmentID,
		Amount:       m.Amount,
		Note:         m.Note,
		Status:       domain.ApplicationStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Investment:   toInvestmentDomain(m.Investment),
		User:         toUserDomain(m.User),
	}
}

func toDestinationModel(d domain.Destination) Destination {
	return Destination{
		Type:          string(d.Type),
		BankName:      d.BankName,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		WalletAddress: d.WalletAddress,
		Network:       d.Network,
	}
}

func toDestinationDomain(m Destination) domain.Destination {
	return domain.Destination{
		Type:          domain.DestinationType(m.Type),
		BankName:      m.BankName,
		AccountName:   m.AccountName,
		AccountNumber: m.AccountNumber,
		WalletAddress: m.WalletAddress,
		Network:       m.Network,
	}
}

func toWithdrawalModel(w *domain.Withdrawal) *Withdrawal {
	return &Withdrawal{
		ID:               w.ID,
		UserID:           w.UserID,
		UserInvestmentID: w.UserInvestmentID,
		Amount:           w.Amount,
		Destination:      toDestinationModel(w.Destination),
		Status:           string(w.Status),
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

func toWithdrawalDomain(m *Withdrawal) *domain.Withdrawal {
	w := &domain.Withdrawal{
		ID:               m.ID,
		UserID:           m.UserID,
		UserInvestmentID: m.UserInvestmentID,
		Amount:           m.Amount,
		Destination:      toDestinationDomain(m.Destination),
		Status:           domain.PayoutStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		User:             toUserDomain(m.User),
	}
	if m.UserInvestment != nil {
		w.UserInvestment = toUserInvestmentDomain(m.UserInvestment)
	}
	return w
}

func toReferralWithdrawalModel(w *domain.ReferralWithdrawal) *ReferralWithdrawal {
	return &ReferralWithdrawal{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      w.Amount,
		Destination: toDestinationModel(w.Destination),
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toReferralWithdrawalDomain(m *ReferralWithdrawal) *domain.ReferralWithdrawal {
	return &domain.ReferralWithdrawal{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Destination: toDestinationDomain(m.Destination),
		Status:      domain.PayoutStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		User:        toUserDomain(m.User),
	}
}

func toRoiTransactionModel(t *domain.RoiTransaction) *RoiTransaction {
	return &RoiTransaction{
		ID:               t.ID,
		UserID:           t.UserID,
		UserInvestmentID: t.UserInvestmentID,
		WithdrawalID:     t.WithdrawalID,
		Type:             string(t.Type),
		Amount:           t.Amount,
		RoiBefore:        t.RoiBefore,
		RoiAfter:         t.RoiAfter,
		UserRoiBefore:    t.UserRoiBefore,
		UserRoiAfter:     t.UserRoiAfter,
		CreatedAt:        t.CreatedAt,
	}
}

func toRoiTransactionDomain(m *RoiTransaction) *domain.RoiTransaction {
	return &domain.RoiTransaction{
		ID:               m.ID,
		UserID:           m.UserID,
		UserInvestmentID: m.UserInvestmentID,
		WithdrawalID:     m.WithdrawalID,
		Type:             domain.RoiTransactionType(m.Type),
		Amount:           m.Amount,
		RoiBefore:        m.RoiBefore,
		RoiAfter:         m.RoiAfter,
		UserRoiBefore:    m.UserRoiBefore,
		UserRoiAfter:     m.UserRoiAfter,
		CreatedAt:        m.CreatedAt,
	}
}

func toNotificationDomain(m *Notification) *domain.Notification {
	return &domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.NotificationType(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMessageDomain(m *Message) *domain.Message {
	return &domain.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toWalletModel(w *domain.Wallet) *Wallet {
	return &Wallet{
		ID:        w.ID,
		Network:   w.Network,
		Address:   w.Address,
		Label:     w.Label,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toWalletDomain(m *Wallet) *domain.Wallet {
	return &domain.Wallet{
		ID:        m.ID,
		Network:   m.Network,
		Address:   m.Address,
		Label:     m.Label,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTransferModel(t *domain.Transfer) *Transfer {
	return &Transfer{
		ID:        t.ID,
		UserID:    t.UserID,
		Amount:    t.Amount,
		BankName:  t.BankName,
		Reference: t.Reference,
		Receipt:   t.Receipt,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTransferDomain(m *Transfer) *domain.Transfer {
	return &domain.Transfer{
		ID:        m.ID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		BankName:  m.BankName,
		Reference: m.Reference,
		Receipt:   m.Receipt,
		Status:    domain.FundingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		User:      toUserDomain(m.User),
	}
}

func toNewsModel(n *domain.News) *News {
	return &News{
		ID:        n.ID,
		Title:     n.Title,
		Summary:   n.Summary,
		Body:      n.Body,
		ImageURL:  n.ImageURL,
		Published: n.Published,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNewsDomain(m *News) *domain.News {
	return &domain.News{
		ID:        m.ID,
		Title:     m.Title,
		Summary:   m.Summary,
		Body:      m.Body,
		ImageURL:  m.ImageURL,
		Published: m.Published,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func mapSlice[M any, D any](in []M, f func(*M) *D) []*D {
	out := make([]*D, 0, len(in))
	for i := range in {
		out = append(out, f(&in[i]))
	}
	return out
}
