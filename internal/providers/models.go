package providers

import "fmt"

// Strength selects between a provider's default model and its stronger one.
type Strength string

const (
	Weak   Strength = "weak"
	Strong Strength = "strong"
)

// StrengthFor maps the "use pro model" toggle to a Strength.
func StrengthFor(useStrong bool) Strength {
	if useStrong {
		return Strong
	}
	return Weak
}

// Selection is the model chosen for a provider and strength.
type Selection struct {
	Provider Provider `json:"provider"`
	ModelID  string   `json:"model"`
	Strength Strength `json:"strength"`
}

type modelPair struct {
	weak   string
	strong string
}

// modelIDs is the only place model identifiers live. Update it when vendors
// ship new releases.
var modelIDs = map[Provider]modelPair{
	Gemini:    {weak: "gemini-2.5-flash", strong: "gemini-2.5-pro"},
	OpenAI:    {weak: "gpt-5-mini", strong: "gpt-5"},
	Anthropic: {weak: "claude-sonnet-4-20250514", strong: "claude-opus-4-1-20250805"},
	Ollama:    {weak: "llama3.1", strong: "llama3.3"},
}

// Select looks up the model id for a provider and strength.
func Select(p Provider, useStrong bool) (Selection, error) {
	pair, ok := modelIDs[p]
	if !ok {
		return Selection{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, string(p))
	}
	sel := Selection{Provider: p, ModelID: pair.weak, Strength: StrengthFor(useStrong)}
	if sel.Strength == Strong {
		sel.ModelID = pair.strong
	}
	return sel, nil
}

// Table returns every selection, weak before strong, in provider display order.
func Table() []Selection {
	var out []Selection
	for _, p := range All() {
		for _, strong := range []bool{false, true} {
			sel, _ := Select(p, strong)
			out = append(out, sel)
		}
	}
	return out
}
