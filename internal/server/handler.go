package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Otavioqwert/tarot-game/internal/game"
	"github.com/Otavioqwert/tarot-game/internal/save"
	"github.com/Otavioqwert/tarot-game/internal/telemetry"
)

type Handler struct {
	game   *game.Game
	events telemetry.Repository
}

func NewHandler(g *game.Game, events telemetry.Repository) *Handler {
	return &Handler{game: g, events: events}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/api/state", h.State)
	e.GET("/api/telemetry/stats", h.Stats)
	e.GET("/api/save/export", h.ExportSave)
	e.POST("/api/save/import", h.ImportSave)
	e.POST("/api/circle/place", h.PlaceCard)
	e.POST("/api/circle/remove", h.RemoveCard)
	e.POST("/api/circle/activate", h.Activate)
	e.POST("/api/circle/collect", h.Collect)
	e.POST("/api/shop/buy", h.Buy)
	e.POST("/api/choice/resolve", h.ResolveChoice)
	e.POST("/api/choice/cancel", h.CancelChoice)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) Stats(c echo.Context) error {
	since := time.Time{}
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "since must be RFC3339"})
		}
		since = parsed
	}
	events, err := h.events.GetEvents(since)
	if err != nil {
		return mapError(c, err)
	}
	stats, err := telemetry.CalculateStats(events, since)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) PlaceCard(c echo.Context) error {
	var req PlaceCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.game.PlaceCard(req.SlotIndex, req.InventoryIndex); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) RemoveCard(c echo.Context) error {
	var req RemoveCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.game.RemoveCard(req.SlotIndex); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) Activate(c echo.Context) error {
	var req ActivateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.game.ActivateEffect(req.SlotIndex); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) Collect(c echo.Context) error {
	return c.JSON(http.StatusOK, CollectResponse{Collected: h.game.CollectReady()})
}

func (h *Handler) Buy(c echo.Context) error {
	var req BuyItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.game.BuyItem(req.ItemID); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) ResolveChoice(c echo.Context) error {
	var req ResolveChoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	var err error
	switch {
	case req.CardID != nil:
		err = h.game.ResolveChoice(*req.CardID)
	case len(req.Marks) > 0:
		picks := make([]game.MarkSacrifice, len(req.Marks))
		for i, m := range req.Marks {
			picks[i] = game.MarkSacrifice{InstanceID: m.InstanceID, MarkIndex: m.MarkIndex}
		}
		err = h.game.ConfirmDevil(picks)
	default:
		err = h.game.ConfirmSacrifice(req.InstanceIDs)
	}
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) CancelChoice(c echo.Context) error {
	if err := h.game.CancelChoice(); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func (h *Handler) ExportSave(c echo.Context) error {
	code, err := h.game.ExportSave()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ExportSaveResponse{Code: code})
}

func (h *Handler) ImportSave(c echo.Context) error {
	var req ImportSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.game.ImportSave(req.Code); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, h.game.Snapshot())
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, game.ErrInvalidIndex),
		errors.Is(err, game.ErrInvalidSelection),
		errors.Is(err, game.ErrEmptySelection),
		errors.Is(err, save.ErrMalformed),
		errors.Is(err, save.ErrVersionMismatch):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, game.ErrUnknownItem):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, game.ErrSlotOccupied),
		errors.Is(err, game.ErrEmptySlot),
		errors.Is(err, game.ErrBlankImmovable),
		errors.Is(err, game.ErrOnCooldown),
		errors.Is(err, game.ErrNotActivatable),
		errors.Is(err, game.ErrChoiceOpen),
		errors.Is(err, game.ErrNoChoice),
		errors.Is(err, game.ErrWrongChoice),
		errors.Is(err, game.ErrInsufficientFunds):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
