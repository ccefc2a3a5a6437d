package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fernhill/farmbox/internal/app/api/server"
	"github.com/fernhill/farmbox/internal/app/service/banking"
	"github.com/fernhill/farmbox/internal/app/service/categorize"
	"github.com/fernhill/farmbox/internal/app/service/plans"
	"github.com/fernhill/farmbox/internal/app/service/subscription"
	"github.com/fernhill/farmbox/internal/platform/db"
	"github.com/fernhill/farmbox/internal/platform/notify"
	"github.com/fernhill/farmbox/internal/platform/payment"
	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	config.Module,
	logger.Module,
	db.Module,
	payment.Module,
	notify.Module,
	server.Module,
	categorize.Module,
	subscription.Module,
	banking.Module,
	plans.Module,
)
