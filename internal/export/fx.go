package export

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/export/service"
)

var Module = fx.Module("export.service",
	fx.Provide(service.NewService),
)
