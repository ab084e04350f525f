package ports

import "context"

// ArtworkInput describes one card artwork request.
type ArtworkInput struct {
	CardName    string
	VisualHints string
	// StyleDescriptor is the art direction from the chosen deck style or
	// the category default.
	StyleDescriptor string
}

// ArtworkGenerator produces card artwork via an external image model.
// The returned reference is a URL or an inline data URL.
type ArtworkGenerator interface {
	GenerateArtwork(ctx context.Context, in ArtworkInput) (string, error)
}

// CardContext is a simplified card representation for the narrative prompt.
type CardContext struct {
	Name        string
	Position    int
	Description string
}

// NarrativeInput holds everything the LLM needs to interpret a reading.
type NarrativeInput struct {
	Category     string
	ReadingTitle string
	Cards        []CardContext
	// Spell and Outcome carry the user's ritual tuning, both optional.
	Spell   string
	Outcome string
	Lang    string
}

// NarrativeOutput is the structured interpretation returned by the LLM:
// one overall outcome plus one text fragment per card, in card order.
type NarrativeOutput struct {
	Outcome string   `json:"outcome"`
	Cards   []string `json:"cards"`
	Model   string   `json:"-"`
}

// Interpreter generates the reading narrative via an LLM.
type Interpreter interface {
	Interpret(ctx context.Context, in NarrativeInput) (NarrativeOutput, error)
}

// OracleInput is one question for the resident oracle.
type OracleInput struct {
	Question string
	// Tone selects the oracle's voice: CELESTIAL, VOID or CHTHONIC.
	Tone string
	Lang string
}

// Oracle answers short free-form questions in a mystic voice.
type Oracle interface {
	Ask(ctx context.Context, in OracleInput) (string, error)
}
