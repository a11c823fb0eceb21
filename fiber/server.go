// Package fiber exposes the message runtime and the progress stream over
// HTTP so that UIs outside the process can drive a lookup.
package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/messaging"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	// DefaultAddr is where the server listens when no address is given.
	DefaultAddr = ":8787"

	// DefaultPingInterval is how often idle progress streams are pinged.
	DefaultPingInterval = 30 * time.Second

	bodyLimit = 4 << 20
)

// Server serves the message API and the progress websocket.
type Server struct {
	app          *fiber.App
	runtime      *messaging.Runtime
	progress     *messaging.Broadcaster
	validate     *validator.Validate
	logger       *slog.Logger
	pingInterval time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPingInterval sets how often progress streams are pinged.
func WithPingInterval(d time.Duration) Option {
	return func(s *Server) {
		s.pingInterval = d
	}
}

// NewServer builds a Server dispatching messages through runtime and
// streaming events published on progress.
func NewServer(runtime *messaging.Runtime, progress *messaging.Broadcaster, opts ...Option) *Server {
	s := &Server{
		runtime:      runtime,
		progress:     progress,
		validate:     validator.New(),
		logger:       slog.New(slog.DiscardHandler),
		pingInterval: DefaultPingInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          s.handleError,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(s.logRequest)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Post("/messages", s.handleMessage)
	api.Use("/progress", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/progress", websocket.New(s.streamProgress))

	s.app = app
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	return s.app.Listen(addr)
}

// Serve serves on an existing listener until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for active requests,
// or for ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeError(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(errorResponse{
		Error: errorDetail{Code: code, Message: message, Details: details},
	})
}

// processMessage mirrors recordscout.ProcessRequest with the constraints
// the HTTP surface enforces before a run starts.
type processMessage struct {
	Action  string `json:"action" validate:"required"`
	Content string `json:"content" validate:"required"`
	URL     string `json:"url" validate:"required,url"`
}

// handleMessage handles POST /api/messages.
func (s *Server) handleMessage(c *fiber.Ctx) error {
	// fasthttp reuses the request buffer once the handler returns.
	body := append([]byte(nil), c.Body()...)

	var envelope struct {
		Action string `json:"action"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return writeError(c, fiber.StatusBadRequest, recordscout.EINVALID, "Invalid request body", nil)
	}

	if envelope.Action == recordscout.ActionProcessContent {
		var req processMessage
		if err := json.Unmarshal(body, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, recordscout.EINVALID, "Invalid request body", nil)
		}
		if err := s.validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, recordscout.EINVALID, "Validation failed", validationDetails(err))
		}
	}

	// A client that goes away must not abort a run already in progress.
	ctx := context.WithoutCancel(c.UserContext())
	out, err := s.runtime.Dispatch(ctx, body)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(out)
}

func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, e := range verrs {
		details[e.Field()] = e.Tag()
	}
	return details
}

// handleError renders errors returned by handlers.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return writeError(c, ferr.Code, recordscout.EINVALID, ferr.Message, nil)
	}

	code := recordscout.ErrorCode(err)
	return writeError(c, statusFor(code), code, recordscout.ErrorMessage(err), nil)
}

func statusFor(code string) int {
	switch code {
	case recordscout.EINVALID:
		return fiber.StatusBadRequest
	case recordscout.ENORECEIVER, recordscout.ENOTFOUND:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.DebugContext(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"error", err,
	)
	return err
}

// streamProgress forwards broadcast progress events to one websocket
// client until it disconnects.
func (s *Server) streamProgress(conn *websocket.Conn) {
	events, cancel := s.progress.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("progress stream closed", "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
