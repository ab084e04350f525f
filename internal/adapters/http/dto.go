package http

import (
	"time"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/wizard"
)

// CatalogResponse is the JSON shape returned by GET /v1/catalog.
type CatalogResponse struct {
	SlotCount    int               `json:"slot_count"`
	Categories   []CategoryResp    `json:"categories"`
	ReadingTypes []ReadingTypeResp `json:"reading_types"`
	Styles       []StyleResp       `json:"styles"`
	Cards        []CardResp        `json:"cards"`
}

type CategoryResp struct {
	ID        domain.Category `json:"id"`
	Title     string          `json:"title"`
	TitleRU   string          `json:"title_ru"`
	HasStyles bool            `json:"has_styles"`
}

type ReadingTypeResp struct {
	ID       string          `json:"id"`
	Category domain.Category `json:"category"`
	Title    string          `json:"title"`
	TitleRU  string          `json:"title_ru"`
	Count    int             `json:"count"`
}

type StyleResp struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	TitleRU string `json:"title_ru"`
}

type CardResp struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameRU        string `json:"name_ru"`
	Arcana        string `json:"arcana"`
	Description   string `json:"description"`
	DescriptionRU string `json:"description_ru"`
}

// SessionResponse is the JSON rendering of one wizard session's state,
// returned by every session endpoint.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	State     StateResp `json:"state"`
}

type StateResp struct {
	Phase         wizard.Phase    `json:"phase"`
	Category      domain.Category `json:"category,omitempty"`
	StyleID       string          `json:"style_id,omitempty"`
	ReadingTypeID string          `json:"reading_type_id,omitempty"`
	PickedSlots   []int           `json:"picked_slots,omitempty"`
	PickCapacity  int             `json:"pick_capacity,omitempty"`
	Loading       bool            `json:"loading"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	Reading       *ReadingResp    `json:"reading,omitempty"`
}

type ReadingResp struct {
	ID        string              `json:"id"`
	Category  domain.Category     `json:"category"`
	Title     string              `json:"title"`
	Outcome   string              `json:"outcome"`
	Degraded  bool                `json:"degraded"`
	Model     string              `json:"model,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Cards     []GeneratedCardResp `json:"cards"`
}

type GeneratedCardResp struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NameRU         string `json:"name_ru"`
	Position       int    `json:"position"`
	ArtworkRef     string `json:"artwork_ref"`
	Interpretation string `json:"interpretation"`
	Revealed       bool   `json:"revealed"`
}

type HistoryResponse struct {
	Records []HistoryRecordResp `json:"records"`
}

type HistoryRecordResp struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Category   domain.Category `json:"category"`
	Title      string          `json:"title"`
	Outcome    string          `json:"outcome"`
	Thumbnails []string        `json:"thumbnails"`
}

// Request bodies for the session action endpoints.

type CategoryRequest struct {
	Category domain.Category `json:"category"`
}

type StyleRequest struct {
	StyleID string `json:"style_id"`
}

// TuningRequest configures the reading type and optional personalization.
// Which tuning fields apply depends on the session's category; unknown
// fields are ignored.
type TuningRequest struct {
	ReadingTypeID string      `json:"reading_type_id"`
	Tuning        *TuningBody `json:"tuning,omitempty"`
}

type TuningBody struct {
	Question       string `json:"question,omitempty"`
	Spell          string `json:"spell,omitempty"`
	Outcome        string `json:"outcome,omitempty"`
	PhotoRef       string `json:"photo_ref,omitempty"`
	SecondPhotoRef string `json:"second_photo_ref,omitempty"`
}

type SlotRequest struct {
	Index int `json:"index"`
}

type OracleRequest struct {
	Question string `json:"question"`
	Tone     string `json:"tone,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

type OracleResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
