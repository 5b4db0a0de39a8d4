package synapse

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ReviewProvider answers review queries on the miner side.
type ReviewProvider interface {
	FetchReviews(ctx context.Context, req ReviewsRequest) (ReviewsResponse, error)
}

type Server struct {
	app      *fiber.App
	cfg      Config
	provider ReviewProvider
}

func NewServer(cfg Config, provider ReviewProvider) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.BodySizeLimit,
		DisableStartupMessage: true,
	})

	app.Use(ZstdMiddleware())
	app.Use(VerifySignatureMiddleware())

	s := &Server{app: app, cfg: cfg, provider: provider}
	app.Post("/reviews", s.handleReviews)
	return s
}

func (s *Server) handleReviews(c *fiber.Ctx) error {
	var req ReviewsRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal reviews request")
		return c.Status(fiber.StatusBadRequest).JSON(ReviewsResponse{Message: "invalid payload"})
	}

	if req.PlaceID == "" || req.Count <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ReviewsResponse{
			RequestID: req.RequestID,
			Message:   "place_id and a positive count are required",
		})
	}

	log.Info().
		Str("request_id", req.RequestID).
		Str("place_id", req.PlaceID).
		Str("validator_hotkey", req.ValidatorHotkey).
		Int("count", req.Count).
		Msg("received reviews request")

	resp, err := s.provider.FetchReviews(c.UserContext(), req)
	if err != nil {
		log.Error().Err(err).Str("request_id", req.RequestID).Msg("provider failed to fetch reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(ReviewsResponse{
			RequestID: req.RequestID,
			Message:   "failed to fetch reviews",
		})
	}
	resp.RequestID = req.RequestID

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Start serves until ctx is canceled, then shuts the listener down. A listen
// failure (port already bound) is returned instead of serving nothing.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			return nil
		}
		log.Error().Err(err).Str("addr", addr).Msg("server listen failed")
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}

// App exposes the fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}
