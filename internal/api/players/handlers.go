// internal/api/players/handlers.go
package players

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tamarside/rounders/internal/api/apiutil"
	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/models"
)

const playerQueryTimeout = 5 * time.Second

var (
	database  *appdb.DB
	appConfig *config.Config
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	database = db
	appConfig = cfg
}

// GET /api/players
func HandlePlayersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	params := apiutil.PageParamsFromRequest(r,
		appConfig.Pagination.DefaultPageSize, appConfig.Pagination.MaxPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	players, err := database.Queries.ListPlayers(ctx, params.PerPage+1, params.Offset())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list players")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to list players")
		return
	}

	hasNext := len(players) > params.PerPage
	if hasNext {
		players = players[:params.PerPage]
	}
	if players == nil {
		players = []models.Player{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, apiutil.Envelope{
		Data:       players,
		Pagination: apiutil.PageOf(params, hasNext),
	})
}

// GET /api/players/{id}
func HandlePlayerGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := database.Queries.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteJSONError(w, http.StatusNotFound, "player not found")
			return
		}
		logger.Error().Err(err).Int64("player_id", id).Msg("Failed to get player")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to get player")
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, player)
}
