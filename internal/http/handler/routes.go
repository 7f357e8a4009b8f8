package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/service"
)

// Services groups everything the HTTP layer depends on.
type Services struct {
	Access   service.AccessService
	Document service.DocumentService
	Auth     service.AuthService
	Activity service.ActivityService
	Dataflow service.DataflowService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Grant issuance and token-gated document delivery. The content route
	// mirrors the fetch URL embedded in issued grants.
	app.Post("/api/documents/:kind/grants", IssueGrant(svcs.Access))
	app.Get("/documents/:kind/:id/content", FetchDocumentContent(svcs.Access))

	// Ungated document endpoints.
	app.Post("/api/documents/:kind", UploadDocument(svcs.Document))
	app.Get("/api/documents/:kind/:id", GetDocument(svcs.Document))
	app.Delete("/api/documents/:kind/:id", DeleteDocument(svcs.Document))
	app.Get("/api/template", GetTemplate(svcs.Document))
	app.Get("/api/excel/latest", GetLatestExcel(svcs.Document))

	// Accounts and presence.
	app.Post("/api/register", Register(svcs.Auth))
	app.Post("/api/login", Login(svcs.Auth))
	app.Post("/api/logout", Logout(svcs.Auth))
	app.Get("/api/users", ListUsers(svcs.Auth))
	app.Delete("/api/users", DeleteUsers(svcs.Auth))
	app.Get("/api/active-users", ActiveUsers(svcs.Auth))

	// Activity and UI events.
	app.Get("/api/logs", GetLogs(svcs.Activity))
	app.Post("/api/events", RecordEvent(svcs.Activity))
	app.Get("/api/events", ListEvents(svcs.Activity))

	// Dataflow engagement forms.
	app.Post("/api/data", SaveDataflow(svcs.Dataflow))
}
