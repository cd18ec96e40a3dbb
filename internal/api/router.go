package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/MihaiVisu/facedetect/internal/api/docs"
	"github.com/MihaiVisu/facedetect/internal/api/handler"
	"github.com/MihaiVisu/facedetect/internal/api/middleware"
)

// Dependencies carries everything the routes need. The service and
// fetcher are interfaces so tests can drop in fakes.
type Dependencies struct {
	DetectionService handler.DetectionService
	ImageFetcher     handler.ImageFetcher
	MaxImageSize     int64
}

// bodyOverhead leaves room for the multipart framing around an upload
// that is itself at the image size cap.
const bodyOverhead = 64 * 1024

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	cfg := fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Face Detection API",
	}

	// Raise Fiber's 4MB transport cap to the configured image cap, or
	// uploads between the two would be rejected before the handler runs.
	if deps != nil {
		max := deps.MaxImageSize
		if max <= 0 {
			max = handler.DefaultMaxImageSize
		}
		cfg.BodyLimit = int(max) + bodyOverhead
	}

	app := fiber.New(cfg)

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler()
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil {
		return
	}

	detectHandler := handler.NewDetectHandler(
		r.deps.DetectionService,
		r.deps.ImageFetcher,
		r.logger,
	).WithMaxImageSize(r.deps.MaxImageSize)

	// API v1 group
	v1 := r.app.Group("/v1")
	v1.Post("/detect", detectHandler.Detect)

	// Route kept for clients of the original API
	r.app.Post("/face_detection/detect/", detectHandler.Detect)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
