package routes

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/config"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0 auto; max-width: 56rem; padding: 2.5rem 1.25rem; font-family: Georgia, "Times New Roman", serif; color: #132019; background: #f6f7f4; }
    h1 { margin: 0 0 0.5rem; }
    p { color: #536258; line-height: 1.6; }
    table { width: 100%; border-collapse: collapse; margin-top: 1.5rem; background: #fff; }
    th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #d8ddd6; font-size: 0.95rem; }
    code { font-family: ui-monospace, monospace; font-size: 0.85rem; }
    a { color: #1f6f4a; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p>Program assignment and progress tracking API. The full contract is in the
  <a href="/docs/openapi.yaml">OpenAPI document</a>.</p>
  <table>
    <tr><th>Method</th><th>Path</th><th>Summary</th></tr>
    {{ range .Endpoints }}<tr><td>{{ .Method }}</td><td><code>{{ .Path }}</code></td><td>{{ .Summary }}</td></tr>
    {{ end }}
  </table>
</body>
</html>`

type docsEndpoint struct {
	Method  string
	Path    string
	Summary string
}

var docsEndpoints = []docsEndpoint{
	{"POST", "/api/auth/register", "Register a client or coach account"},
	{"POST", "/api/auth/login", "Exchange credentials for a token"},
	{"GET", "/api/auth/me", "Current account"},
	{"POST", "/api/v1/programs", "Create a program (coach)"},
	{"GET", "/api/v1/programs", "List own or assigned programs"},
	{"GET", "/api/v1/programs/:id", "Program with workouts"},
	{"POST", "/api/v1/programs/:id/workouts", "Add a workout (coach)"},
	{"POST", "/api/v1/assignments", "Assign a program to a client (coach)"},
	{"GET", "/api/v1/assignments", "Own assignments with progress"},
	{"POST", "/api/v1/progress/:workoutID/done", "Mark a workout done (client)"},
	{"POST", "/api/v1/feedback", "Submit feedback for a completed program (client)"},
	{"PUT", "/api/v1/admin/users/:id/role", "Change a user's role (super admin)"},
	{"PUT", "/api/v1/admin/users/:id/password", "Reset a user's password (super admin)"},
	{"PUT", "/api/v1/admin/users/:id/active", "Toggle account activation (super admin)"},
	{"GET", "/api/v1/admin/audit", "Audit trail (super admin)"},
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	tmpl, err := template.New("docs").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	var rendered strings.Builder
	if err := tmpl.Execute(&rendered, struct {
		Title     string
		Endpoints []docsEndpoint
	}{
		Title:     "ProgramTrack API",
		Endpoints: docsEndpoints,
	}); err != nil {
		return fmt.Errorf("render docs page: %w", err)
	}
	page := rendered.String()

	spec, err := loadOpenAPISpec()
	if err != nil {
		return fmt.Errorf("load openapi spec: %w", err)
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).SendString(page)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(spec)
	})

	return nil
}

func loadOpenAPISpec() ([]byte, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("resolve docs source path")
	}
	specPath := filepath.Join(filepath.Dir(currentFile), "..", "..", "docs", "openapi.yaml")
	return os.ReadFile(specPath)
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Referrer-Policy", "no-referrer")
}
