package http

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes func - Mounts the REST and WebSocket routes
func RegisterRoutes(app *fiber.App, hdl *HTTPHandler) {
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/v1/api")
	{
		api.Get("/catalog/questions", hdl.ListQuestions)
		api.Get("/catalog/scenarios", hdl.ListScenarios)
		api.Get("/catalog/personas", hdl.ListPersonas)
	}

	interviews := api.Group("", hdl.RequireUser)
	{
		interviews.Post("/algorithm/start", hdl.StartAlgorithm)
		interviews.Post("/algorithm/:id/answer", hdl.AnswerAlgorithm)
		interviews.Post("/algorithm/:id/end", hdl.EndAlgorithm)

		interviews.Post("/system-design/start", hdl.StartSystemDesign)
		interviews.Post("/system-design/:id/discuss", hdl.DiscussSystemDesign)
		interviews.Post("/system-design/:id/end", hdl.EndSystemDesign)

		interviews.Post("/workplace/start", hdl.StartWorkplace)
		interviews.Post("/workplace/:id/end", hdl.EndWorkplace)

		interviews.Get("/sessions/:id", hdl.GetSession)

		interviews.Get("/history", hdl.ListHistory)
		interviews.Get("/history/:id", hdl.GetHistory)
		interviews.Delete("/history/:id", hdl.DeleteHistory)
	}

	ws := app.Group("/ws", hdl.UpgradeWebSocket, hdl.RequireUser)
	{
		ws.Get("/algorithm/:id", hdl.InterviewSocket())
		ws.Get("/system-design/:id", hdl.InterviewSocket())
		ws.Get("/workplace/:id", hdl.InterviewSocket())
	}
}
