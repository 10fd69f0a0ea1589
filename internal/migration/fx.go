package migration

import (
	"github.com/invoiceflow/invoiceflow/internal/config"
	contactdomain "github.com/invoiceflow/invoiceflow/internal/contact/domain"
	invoicedomain "github.com/invoiceflow/invoiceflow/internal/invoice/domain"
	settingdomain "github.com/invoiceflow/invoiceflow/internal/setting/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite and mysql deployments rely on gorm schema sync;
			// versioned SQL migrations are written for postgres.
			return conn.AutoMigrate(
				&invoicedomain.Invoice{},
				&contactdomain.Contact{},
				&settingdomain.UserSettings{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		return RunMigrations(sqlDB)
	}),
)
