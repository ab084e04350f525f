// Package http exposes the wizard, history and oracle over an echo server.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kolombo420/tarot/internal/app"
	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/ports"
	"github.com/kolombo420/tarot/internal/wizard"
)

type Handler struct {
	svc     *app.WizardService
	catalog ports.CatalogStore
	oracle  ports.Oracle
	lang    string
}

func NewHandler(svc *app.WizardService, catalog ports.CatalogStore, oracle ports.Oracle, lang string) *Handler {
	return &Handler{svc: svc, catalog: catalog, oracle: oracle, lang: lang}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/catalog", h.GetCatalog)
	e.GET("/v1/history", h.GetHistory)
	e.POST("/v1/oracle", h.AskOracle)

	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions/:id", h.GetSession)
	e.POST("/v1/sessions/:id/category", h.SelectCategory)
	e.POST("/v1/sessions/:id/style", h.SelectStyle)
	e.POST("/v1/sessions/:id/tuning", h.Configure)
	e.POST("/v1/sessions/:id/pick", h.PickSlot)
	e.POST("/v1/sessions/:id/reveal", h.RevealCard)
	e.POST("/v1/sessions/:id/back", h.action(wizard.Back{}))
	e.POST("/v1/sessions/:id/reset", h.action(wizard.Reset{}))
	e.POST("/v1/sessions/:id/ack", h.action(wizard.AckError{}))
	e.POST("/v1/sessions/:id/history/open", h.action(wizard.OpenHistory{}))
	e.POST("/v1/sessions/:id/history/close", h.action(wizard.CloseHistory{}))
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetCatalog(c echo.Context) error {
	cat, err := h.catalog.GetCatalog(c.Request().Context(), domain.CatalogMajorArcana)
	if err != nil {
		return mapError(c, err)
	}

	resp := CatalogResponse{SlotCount: domain.SlotCount}
	for _, info := range domain.Categories() {
		resp.Categories = append(resp.Categories, CategoryResp{
			ID:        info.ID,
			Title:     info.Title,
			TitleRU:   info.TitleRU,
			HasStyles: info.HasStyles,
		})
		for _, rt := range domain.ReadingTypesFor(info.ID) {
			resp.ReadingTypes = append(resp.ReadingTypes, ReadingTypeResp{
				ID:       rt.ID,
				Category: rt.Category,
				Title:    rt.Title,
				TitleRU:  rt.TitleRU,
				Count:    rt.Count,
			})
		}
	}
	for _, s := range domain.DeckStyles() {
		resp.Styles = append(resp.Styles, StyleResp{ID: s.ID, Title: s.Title, TitleRU: s.TitleRU})
	}
	for _, card := range cat.Cards {
		resp.Cards = append(resp.Cards, CardResp{
			ID:            card.ID,
			Name:          card.Name,
			NameRU:        card.NameRU,
			Arcana:        card.Arcana,
			Description:   card.Description,
			DescriptionRU: card.DescriptionRU,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetHistory(c echo.Context) error {
	records := h.svc.History()
	resp := HistoryResponse{Records: make([]HistoryRecordResp, len(records))}
	for i, r := range records {
		resp.Records[i] = HistoryRecordResp{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt,
			Category:   r.Category,
			Title:      r.Title,
			Outcome:    r.Outcome,
			Thumbnails: r.Thumbnails,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) AskOracle(c echo.Context) error {
	var req OracleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if req.Question == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question is required"})
	}
	lang := req.Lang
	if lang == "" {
		lang = h.lang
	}

	answer, err := h.oracle.Ask(c.Request().Context(), ports.OracleInput{
		Question: req.Question,
		Tone:     req.Tone,
		Lang:     lang,
	})
	if err != nil {
		// The oracle degrades in character instead of surfacing a 5xx.
		requestID, _ := c.Get("request_id").(string)
		slog.Warn("oracle failure", "request_id", requestID, "error", err)
		answer = oracleFallback(lang)
	}
	return c.JSON(http.StatusOK, OracleResponse{Answer: answer})
}

func (h *Handler) CreateSession(c echo.Context) error {
	sess := h.svc.CreateSession()
	return c.JSON(http.StatusCreated, toSessionResponse(sess.ID(), sess.Snapshot()))
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess.ID(), sess.Snapshot()))
}

func (h *Handler) SelectCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	return h.apply(c, wizard.SelectCategory{Category: req.Category})
}

func (h *Handler) SelectStyle(c echo.Context) error {
	var req StyleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	return h.apply(c, wizard.SelectStyle{StyleID: req.StyleID})
}

func (h *Handler) Configure(c echo.Context) error {
	var req TuningRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}

	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	// The snapshot's category may be stale if another request changes it
	// concurrently; Transition rejects a mismatched tuning variant with
	// ErrInvalidTransition, so this maps to a 409, never a corrupt request.
	tuning := toTuning(sess.Snapshot().Request.Category, req.Tuning)

	return h.apply(c, wizard.Configure{ReadingTypeID: req.ReadingTypeID, Tuning: tuning})
}

func (h *Handler) PickSlot(c echo.Context) error {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	return h.apply(c, wizard.PickSlot{Index: req.Index})
}

func (h *Handler) RevealCard(c echo.Context) error {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	return h.apply(c, wizard.RevealCard{Index: req.Index})
}

// action builds a handler for the body-less session events.
func (h *Handler) action(e wizard.Event) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.apply(c, e)
	}
}

func (h *Handler) apply(c echo.Context, e wizard.Event) error {
	st, err := h.svc.Apply(c.Param("id"), e)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(c.Param("id"), st))
}

// toTuning maps the flat tuning body onto the category's personalization
// variant. Fields the category does not use are dropped.
func toTuning(cat domain.Category, body *TuningBody) domain.Personalization {
	if body == nil {
		return nil
	}
	switch cat {
	case domain.CategoryTarot:
		return domain.TarotTuning{Question: body.Question}
	case domain.CategoryHex:
		return domain.HexTuning{Spell: body.Spell, Outcome: body.Outcome, PhotoRef: body.PhotoRef}
	case domain.CategoryLove:
		return domain.LoveTuning{
			Spell:          body.Spell,
			Outcome:        body.Outcome,
			PhotoRef:       body.PhotoRef,
			SecondPhotoRef: body.SecondPhotoRef,
		}
	case domain.CategoryDivination:
		return domain.DivinationTuning{Question: body.Question, PhotoRef: body.PhotoRef}
	default:
		return nil
	}
}

func toSessionResponse(id string, st wizard.State) SessionResponse {
	resp := SessionResponse{
		SessionID: id,
		State: StateResp{
			Phase:        st.Phase,
			Category:     st.Request.Category,
			PickedSlots:  st.Request.PickedSlots,
			PickCapacity: st.Selection.Capacity(),
			Loading:      st.Loading,
			ErrorMessage: st.ErrMessage,
		},
	}
	if st.Request.Style != nil {
		resp.State.StyleID = st.Request.Style.ID
	}
	if st.Request.ReadingType != nil {
		resp.State.ReadingTypeID = st.Request.ReadingType.ID
	}
	if st.Reading != nil {
		resp.State.Reading = toReadingResp(st.Reading)
	}
	return resp
}

func toReadingResp(r *domain.Reading) *ReadingResp {
	cards := make([]GeneratedCardResp, len(r.Cards))
	for i, gc := range r.Cards {
		cards[i] = GeneratedCardResp{
			ID:             gc.Card.ID,
			Name:           gc.Card.Name,
			NameRU:         gc.Card.NameRU,
			Position:       gc.Position,
			ArtworkRef:     gc.ArtworkRef,
			Interpretation: gc.Interpretation,
			Revealed:       gc.Revealed,
		}
	}
	return &ReadingResp{
		ID:        r.ID,
		Category:  r.Category,
		Title:     r.Title,
		Outcome:   r.Outcome,
		Degraded:  r.Degraded,
		Model:     r.Model,
		CreatedAt: r.CreatedAt,
		Cards:     cards,
	}
}

func oracleFallback(lang string) string {
	if lang == "ru" {
		return "Связь с потусторонним прервана. Спросите позже."
	}
	return "The link to the beyond is broken. Ask again later."
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrUnknownStyle),
		errors.Is(err, domain.ErrUnknownReadingType):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidLLMJSON):
		slog.Error("upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream LLM failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
