package feed

import (
	"net/http"
	"parkflow/config"
	"parkflow/infras/otel"
	lotService "parkflow/internal/domains/lot/service"
	"parkflow/shared/changefeed"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"parkflow/transport/http/response"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type Handler struct {
	feed     changefeed.Feed
	lots     lotService.Lot
	otel     otel.Otel
	upgrader websocket.Upgrader
}

func New(feed changefeed.Feed, lots lotService.Lot, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		feed: feed,
		lots: lots,
		otel: otel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				return origin == "" || !cfg.App.CORS.Enable ||
					slices.Contains(cfg.App.CORS.AllowedOrigins, constant.Asterix) ||
					slices.Contains(cfg.App.CORS.AllowedOrigins, origin)
			},
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/feed/{table}", handler.Subscribe)
}

// Subscribe streams row changes of a table over a websocket.
// @Summary Live change feed
// @Description Upgrade to a websocket that receives a JSON event for every change to bookings or parking_lots. Business accounts only receive events of their own lot. Browsers pass the access token in the token query parameter.
// @Tags Feed
// @Param table path string true "Table" Enums(bookings, parking_lots)
// @Param token query string false "Access token"
// @Success 101
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/feed/{table} [get]
// @Security BearerAuth
func (handler *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Subscribe")

	table := chi.URLParam(r, constant.RequestParamTable)
	if !changefeed.IsKnownTable(table) {
		scope.End()
		response.WithError(w, failure.BadRequestFromString("unknown table "+table))

		return
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var lotID string

	switch role {
	case constant.RoleAdmin:
	case constant.RoleBusiness:
		lot, err := handler.lots.GetByOwner(ctx, user)
		if err != nil {
			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		lotID = lot.ID
	default:
		if table == changefeed.TableBookings {
			scope.End()
			response.WithError(w, failure.ResourceRestrictedError)

			return
		}
	}

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		scope.End()
		log.Error().Err(err).Msg("failed to upgrade to websocket")

		return
	}

	scope.AddEvent("Change feed subscribed by user " + user)
	scope.End()

	events, cancel := handler.feed.Subscribe(table)

	go handler.readPump(conn, cancel)

	handler.writePump(conn, events, lotID)
}

// readPump discards client messages and cancels the subscription once the
// peer goes away.
func (handler *Handler) readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()

	conn.SetReadLimit(512)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("change feed connection closed")
			}

			return
		}
	}
}

func (handler *Handler) writePump(conn *websocket.Conn, events <-chan changefeed.Event, lotID string) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-events:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if lotID != "" && event.LotID != lotID {
				continue
			}

			if err := conn.WriteJSON(event); err != nil {
				log.Warn().Err(err).Msg("failed to write change event")

				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
