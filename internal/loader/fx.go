package loader

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/petrel/internal/loader/service"
)

var Module = fx.Module("loader.service",
	fx.Provide(service.NewService),
)
