// Nightjar gateway: HTTP front for the counter-fraud honeypot engine.
// Receives scam messages, engages the scammer with the persona, returns
// the reply plus extracted intelligence.
package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NightjarHQ/nightjar/pkg/config"
	"github.com/NightjarHQ/nightjar/pkg/engage"
	"github.com/NightjarHQ/nightjar/pkg/honeypot"
	"github.com/NightjarHQ/nightjar/pkg/httputil"
	"github.com/NightjarHQ/nightjar/pkg/scam"
	"github.com/NightjarHQ/nightjar/pkg/session"
	"github.com/NightjarHQ/nightjar/pkg/telemetry"
)

const Version = "1.0.0"

func main() {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}
	defer engine.Close()

	limiter := httputil.NewLimiter(cfg.MaxConcurrentTurns)

	app := fiber.New(fiber.Config{
		AppName: "Nightjar Honeypot",
	})

	app.Use(requestLogger())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"version":  Version,
			"sessions": engine.Sessions(),
			"limiter":  limiter.Stats(),
			"activity": engine.Stats(),
		})
	})

	app.Post("/honeypot", func(c fiber.Ctx) error {
		if cfg.APIKey != "" && c.Get("x-api-key") != cfg.APIKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid API key"})
		}

		var req honeypot.Request
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.SessionID == "" {
			// Callers should supply a session id; without one each message
			// becomes its own single-turn session.
			req.SessionID = uuid.NewString()
		}

		if !limiter.TryAcquire() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "over capacity"})
		}
		defer limiter.Release()

		return c.JSON(engine.HandleMessage(c.Context(), req))
	})

	log.Info().Str("addr", cfg.ListenAddr).Msg("nightjar gateway listening")
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// buildEngine assembles the honeypot engine, applying YAML signal and
// persona overrides when configured.
func buildEngine(cfg *config.Config) (*honeypot.Engine, error) {
	classifier := scam.NewClassifier()
	if cfg.SignalsPath != "" {
		if err := classifier.LoadSignalsFile(cfg.SignalsPath); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SignalsPath).Msg("loaded custom signals")
	}

	planner := engage.NewPlanner()
	if cfg.PersonaPath != "" {
		script, err := engage.LoadScriptFile(cfg.PersonaPath)
		if err != nil {
			return nil, err
		}
		planner = engage.NewPlannerWithScript(script)
		log.Info().Str("path", cfg.PersonaPath).Msg("loaded persona overrides")
	}

	store := session.NewStore(session.WithTTL(cfg.SessionTTL))

	return honeypot.NewEngine(
		honeypot.WithStore(store),
		honeypot.WithClassifier(classifier),
		honeypot.WithPlanner(planner),
		honeypot.WithRecorder(telemetry.NewRecorder()),
		honeypot.WithLogger(log.Logger),
		honeypot.WithMinScamConfidence(cfg.MinScamConfidence),
	), nil
}

// requestLogger logs one structured line per request with a generated
// request id.
func requestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		reqID := uuid.NewString()

		err := c.Next()

		event := log.Info()
		status := c.Response().StatusCode()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}
		event.
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
