package documents_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/api/controllers"
	"tripmate/internal/services"
)

var Module = fx.Provide(
	services.NewRetrievalService,
	controllers.NewDocumentController)
