package health

import (
	"context"
	"net/http"
	"parkflow/infras/postgres"
	"parkflow/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const pingTimeout = 3 * time.Second

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
}

func New(db *postgres.Connection, redis *goRedis.Client) Handler {
	return Handler{
		db:    db,
		redis: redis,
	}
}

type Status struct {
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health pings every backing store.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status := Status{Postgres: "ok", Redis: "ok"}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := handler.db.Write.PingContext(gctx); err != nil {
			status.Postgres = err.Error()

			return err
		}

		if err := handler.db.Read.PingContext(gctx); err != nil {
			status.Postgres = err.Error()

			return err
		}

		return nil
	})

	group.Go(func() error {
		if err := handler.redis.Ping(gctx).Err(); err != nil {
			status.Redis = err.Error()

			return err
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("health check failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
