package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"feirarinos/internal/backend"
	"feirarinos/internal/config"
	"feirarinos/internal/http/handlers"
	applog "feirarinos/internal/log"
)

// newTestApp wires the real handlers over an in-memory backend, with
// the same csrf setup as the entry point.
func newTestApp(t *testing.T) (*fiber.App, *backend.Backend) {
	t.Helper()
	be, err := backend.Open(":memory:")
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	cfg := config.Config{
		DBDSN:           ":memory:",
		WhatsAppBaseURL: "https://wa.me",
		LocationTag:     "ARINOS-MG",
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Tivemos um erro no servidor. Tente mais tarde.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Tivemos um erro no servidor. Tente mais tarde.")
			}
			return nil
		},
	})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(be, cfg)
	app.Get("/", deps.Directory.Home)
	app.Get("/busca", deps.Directory.Page)
	app.Get("/contato/:id", deps.Contact.Redirect)
	app.Get("/cadastro", deps.Register.Form)
	app.Post("/cadastro/identidade", deps.Register.SubmitIdentity)
	app.Post("/cadastro/banca", deps.Register.SubmitProfile)
	app.Post("/cadastro/produtos", deps.Register.SubmitProducts)
	app.Post("/cadastro/voltar", deps.Register.Back)
	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	return app, be
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
