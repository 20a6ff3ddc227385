package health

import (
	"net/http"

	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	"hospicore/shared/cache"
	"hospicore/shared/constant"
	"hospicore/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	db    *postgres.Connection
	cache cache.RedisCache
	otel  otel.Otel
}

func New(db *postgres.Connection, cache cache.RedisCache, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		cache: cache,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports whether the server and its backing stores are reachable.
// @Summary Health check
// @Description Ping the databases and the cache and report server health.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "SERVER HEALTHY"
// @Failure 503 {object} response.Message "SERVER UNHEALTHY"
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	if err := handler.db.Read.PingContext(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ping read database")

		response.WithUnhealthy(w)

		return
	}

	if err := handler.db.Write.PingContext(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ping write database")

		response.WithUnhealthy(w)

		return
	}

	if err := handler.cache.Ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ping cache")

		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, "SERVER HEALTHY")
}
