package health

import (
	"rule-sync/core/exporter"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// Feature implements the loader.Feature interface.
type Feature struct {
	expCfg exporter.Config
	logger *zap.Logger

	// cliCheck is swapped out in tests.
	cliCheck func(exporter.Config) bool
}

// NewFeature creates a new Health feature.
func NewFeature(expCfg exporter.Config, logger *zap.Logger) *Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feature{expCfg: expCfg, logger: logger, cliCheck: exporter.CLIAvailable}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "health"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/health", f.HandleHealth)
	return nil
}

// HandleHealth reports service status.
// @Summary Health Check
// @Description Reports service status and whether the structured export CLI is available.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Health status"
// @Router /health [get]
func (f *Feature) HandleHealth(c *fiber.Ctx) error {
	available := f.expCfg.UseCLI && f.cliCheck(f.expCfg)
	return c.JSON(fiber.Map{
		"status":        "healthy",
		"cli_available": available,
		"version":       Version,
	})
}
