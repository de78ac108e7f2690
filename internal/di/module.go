package di

import (
	"go.uber.org/fx"

	"github.com/mkruglov/marketbot/internal/adapter/addresscrypt"
	"github.com/mkruglov/marketbot/internal/app"
	"github.com/mkruglov/marketbot/internal/config"
	"github.com/mkruglov/marketbot/internal/logger"
	"github.com/mkruglov/marketbot/internal/pkg/auth"
	"github.com/mkruglov/marketbot/internal/server/http/handlers"
	"github.com/mkruglov/marketbot/internal/server/http/router"
	"github.com/mkruglov/marketbot/internal/session"
	"github.com/mkruglov/marketbot/internal/storage/postgres"
	"github.com/mkruglov/marketbot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		addresscrypt.Module,
		session.Module,
		usecase.Module,
		fx.Provide(func(f *app.ShopFacade) handlers.MarketFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
