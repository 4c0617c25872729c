package integrity

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/integrity/service"
)

var Module = fx.Module("integrity.service",
	fx.Provide(service.NewService),
)
