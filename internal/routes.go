package internal

import (
	"net/http"
	"smokeless/internal/controllers"
	"smokeless/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/today", http.HandlerFunc(apiController.GetToday))
	routers.Post("/smoke", http.HandlerFunc(apiController.RecordEvent))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/timeline", http.HandlerFunc(apiController.GetTimeline))
	routers.Get("/settings", http.HandlerFunc(apiController.GetSettings))
	routers.Post("/settings", http.HandlerFunc(apiController.UpdateSettings))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	return routers
}
