package demoserver

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Denwa799/openapi-example/demoapi"
	apperrors "github.com/Denwa799/openapi-example/errors"
	"github.com/Denwa799/openapi-example/logger"
	"github.com/Denwa799/openapi-example/observability"
	"github.com/Denwa799/openapi-example/openapi"
	"github.com/Denwa799/openapi-example/server"
)

const serviceName = "demo-server"

// App serves the demo routes.
type App struct {
	scenario Scenario
	schema   *openapi.Schema
	log      *logger.Logger
	metrics  *observability.Metrics
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the app logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithMetrics records one operation per demo request.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New creates an App answering through scenario.
func New(scenario Scenario, opts ...Option) *App {
	a := &App{
		scenario: scenario,
		schema:   demoapi.Schema(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.WithComponent("demo")
	}
	return a
}

// Schema returns the schema served on /api-json.
func (a *App) Schema() *openapi.Schema { return a.schema }

// Register mounts the demo and document routes on engine and answers
// unknown routes with a 404 error body.
func (a *App) Register(engine *gin.Engine) {
	engine.GET(demoapi.PathText, a.text)
	engine.GET(demoapi.PathJSON, a.json)
	engine.GET(demoapi.PathXML, a.xml)
	engine.GET("/api-json", a.documentJSON)
	engine.GET("/api-yaml", a.documentYAML)
	engine.NoRoute(server.NoRoute())
}

func (a *App) text(c *gin.Context) {
	a.answer(c, func() { server.RespondText(c, "text/plain; charset=utf-8", demoapi.TextBody) })
}

func (a *App) json(c *gin.Context) {
	a.answer(c, func() { server.RespondOK(c, demoapi.JSONData) })
}

func (a *App) xml(c *gin.Context) {
	a.answer(c, func() { server.RespondText(c, "application/xml; charset=utf-8", demoapi.XMLBody) })
}

// answer picks the outcome for the route and writes it.
func (a *App) answer(c *gin.Context, success func()) {
	start := time.Now()
	path := c.FullPath()
	outcome := a.scenario.Pick(path)

	switch outcome {
	case OutcomeBadRequest:
		server.RespondWithError(c, apperrors.BadRequest(demoapi.MessageBadRequest))
	case OutcomeServerError:
		server.RespondWithError(c, apperrors.InternalMessage(demoapi.MessageServerError))
	default:
		success()
	}

	elapsed := time.Since(start)
	fields := logger.DurationFields(path, elapsed)
	fields["outcome"] = outcome.String()
	fields[logger.FieldStatus] = c.Writer.Status()
	a.log.WithContext(c.Request.Context()).Debug("Demo outcome", fields)
	if a.metrics != nil {
		a.metrics.RecordOperation(c.Request.Context(), serviceName, path, outcome.String(), elapsed)
	}
}

func (a *App) documentJSON(c *gin.Context) {
	c.JSON(http.StatusOK, a.schema.Document())
}

func (a *App) documentYAML(c *gin.Context) {
	var buf bytes.Buffer
	if err := a.schema.WriteYAML(&buf); err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", buf.Bytes())
}

// CheckHealth reports the scenario in use.
func (a *App) CheckHealth(context.Context) observability.Health {
	return observability.Health{
		Name:    "scenario",
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"type": scenarioName(a.scenario)},
	}
}

func scenarioName(s Scenario) string {
	switch v := s.(type) {
	case *RandomScenario:
		return ModeRandom
	case FixedScenario:
		return Outcome(v).String()
	case *SequenceScenario:
		return "sequence"
	default:
		return "custom"
	}
}
