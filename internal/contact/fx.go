package contact

import (
	"github.com/invoiceflow/invoiceflow/internal/contact/repository"
	"github.com/invoiceflow/invoiceflow/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
