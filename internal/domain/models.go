package domain

import "time"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Category identifies a ritual category.
type Category string

const (
	CategoryTarot      Category = "TAROT"
	CategoryHex        Category = "HEX"
	CategoryLove       Category = "LOVE"
	CategoryDivination Category = "DIVINATION"
)

// Card represents a single catalog card. Reference data, never mutated.
type Card struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameRU        string `json:"name_ru"`
	Arcana        string `json:"arcana"`
	Description   string `json:"description"`
	DescriptionRU string `json:"description_ru"`
	VisualHints   string `json:"visual_hints"`
}

// Catalog is a collection of drawable cards.
type Catalog struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// CategoryInfo describes a ritual category and its generation defaults.
type CategoryInfo struct {
	ID            Category `json:"id"`
	Title         string   `json:"title"`
	TitleRU       string   `json:"title_ru"`
	Description   string   `json:"description"`
	DescriptionRU string   `json:"description_ru"`
	// HasStyles controls whether the wizard offers deck-style selection.
	HasStyles bool `json:"has_styles"`
	// PromptStyle is the art-direction descriptor used when the category
	// has no user-selectable deck style.
	PromptStyle string `json:"-"`
}

// ReadingType selects how many cards a reading requires.
type ReadingType struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Title         string   `json:"title"`
	TitleRU       string   `json:"title_ru"`
	Count         int      `json:"count"`
	Description   string   `json:"description"`
	DescriptionRU string   `json:"description_ru"`
}

// DeckStyle is a selectable art style for TAROT readings.
type DeckStyle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TitleRU     string `json:"title_ru"`
	Description string `json:"description"`
	// PromptStyle guides external artwork generation.
	PromptStyle string `json:"-"`
}

// Personalization is a per-category tagged variant of the ritual tuning
// inputs. A nil Personalization means the user skipped tuning.
type Personalization interface {
	Category() Category
}

// TarotTuning focuses a tarot reading on a question.
type TarotTuning struct {
	Question string
}

func (TarotTuning) Category() Category { return CategoryTarot }

// HexTuning carries the intent and target of a hex ritual.
type HexTuning struct {
	Spell    string
	Outcome  string
	PhotoRef string
}

func (HexTuning) Category() Category { return CategoryHex }

// LoveTuning carries the intent of a binding ritual and up to two visages.
type LoveTuning struct {
	Spell          string
	Outcome        string
	PhotoRef       string
	SecondPhotoRef string
}

func (LoveTuning) Category() Category { return CategoryLove }

// DivinationTuning carries a direct question for the higher spheres.
type DivinationTuning struct {
	Question string
	PhotoRef string
}

func (DivinationTuning) Category() Category { return CategoryDivination }

// ReadingRequest is built incrementally across wizard phases and owned by the
// active session. Discarded on reset.
type ReadingRequest struct {
	Category    Category
	Style       *DeckStyle
	ReadingType *ReadingType
	Tuning      Personalization
	Lang        string
	// PickedSlots are the face-down slot indices the user clicked, in pick
	// order. They complete the selection ritual; the drawn card identities
	// are randomized independently.
	PickedSlots []int
}

// Complete reports whether the request carries everything generation needs.
func (r ReadingRequest) Complete() bool {
	return r.Category != "" && r.ReadingType != nil && len(r.PickedSlots) == r.ReadingType.Count
}

// PromptStyle resolves the art-direction descriptor for the request.
func (r ReadingRequest) PromptStyle() string {
	if r.Style != nil {
		return r.Style.PromptStyle
	}
	if info, ok := CategoryByID(r.Category); ok {
		return info.PromptStyle
	}
	return ""
}

// GeneratedCard is a catalog card enriched with generation outputs.
// Revealed is the only field mutated after creation.
type GeneratedCard struct {
	Card
	Position       int    `json:"position"`
	ArtworkRef     string `json:"artwork_ref"`
	Interpretation string `json:"interpretation"`
	Revealed       bool   `json:"revealed"`
}

// Reading is the aggregate result of one completed generation.
type Reading struct {
	ID        string          `json:"id"`
	Category  Category        `json:"category"`
	Title     string          `json:"title"`
	Cards     []GeneratedCard `json:"cards"`
	Outcome   string          `json:"outcome"`
	Degraded  bool            `json:"degraded"`
	Model     string          `json:"model"`
	CreatedAt time.Time       `json:"created_at"`
	Request   ReadingRequest  `json:"-"`
}

// HistoryRecord is the trimmed projection of a Reading kept in the bounded
// history log.
type HistoryRecord struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Category   Category  `json:"category"`
	Title      string    `json:"title"`
	Outcome    string    `json:"outcome"`
	Thumbnails []string  `json:"thumbnails"`
}
