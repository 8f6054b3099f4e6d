package app

import (
	"log/slog"

	"github.com/amirasaad/invest/pkg/cache"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/handler/email"
	"github.com/amirasaad/invest/pkg/mail"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/application"
	"github.com/amirasaad/invest/pkg/service/auth"
	"github.com/amirasaad/invest/pkg/service/content"
	"github.com/amirasaad/invest/pkg/service/deposit"
	"github.com/amirasaad/invest/pkg/service/investment"
	"github.com/amirasaad/invest/pkg/service/notification"
	"github.com/amirasaad/invest/pkg/service/price"
	"github.com/amirasaad/invest/pkg/service/transfer"
	"github.com/amirasaad/invest/pkg/service/user"
	"github.com/amirasaad/invest/pkg/service/withdrawal"
	"github.com/amirasaad/invest/pkg/storage"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	Cache    cache.Store
	Storage  storage.Storage
	Mailer   mail.Mailer
	Captcha  auth.CaptchaVerifier
	Prices   price.Provider
	EventBus eventbus.Bus
	Logger   *slog.Logger
}

type App struct {
	Deps   *Deps
	Config *config.App

	AuthService         *auth.Service
	UserService         *user.UserService
	InvestmentService   *investment.Service
	DepositService      *deposit.Service
	ApplicationService  *application.Service
	WithdrawalService   *withdrawal.Service
	ReferralService     *withdrawal.ReferralService
	TransferService     *transfer.Service
	NotificationService *notification.Service
	NewsService         *content.NewsService
	MessageService      *content.MessageService
	WalletService       *content.WalletService
	PriceService        *price.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	uploader := storage.NewUploader(deps.Storage, storage.Policy{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	})

	var resets auth.ResetSender
	if deps.Mailer != nil {
		resets = email.NewResetMailer(deps.Mailer, cfg.Server.PublicURL, deps.Logger)
	}
	app.AuthService = auth.New(
		deps.Uow,
		cfg.Auth,
		cfg.Referral,
		deps.Captcha,
		cache.NewTokenDenylist(deps.Cache),
		resets,
		deps.EventBus,
		deps.Logger,
	)
	app.UserService = user.NewUserService(deps.Uow, deps.Logger)
	app.InvestmentService = investment.New(deps.Uow, deps.EventBus, deps.Logger)
	app.DepositService = deposit.New(deps.Uow, uploader, deps.EventBus, deps.Logger)
	app.ApplicationService = application.New(deps.Uow, deps.EventBus, deps.Logger)
	app.WithdrawalService = withdrawal.New(deps.Uow, deps.EventBus, deps.Logger)
	app.ReferralService = withdrawal.NewReferralService(deps.Uow, deps.EventBus, cfg.Referral.Threshold, deps.Logger)
	app.TransferService = transfer.New(deps.Uow, uploader, deps.EventBus, deps.Logger)
	app.NotificationService = notification.New(deps.Uow, deps.Logger)
	app.NewsService = content.NewNewsService(deps.Uow, uploader, deps.Logger)
	app.MessageService = content.NewMessageService(deps.Uow, deps.Logger)
	app.WalletService = content.NewWalletService(deps.Uow)
	app.PriceService = price.New(deps.Prices, deps.Cache, cfg.PriceFeed.Coins, cfg.PriceFeed.CacheTTL, deps.Logger)
	return app
}
