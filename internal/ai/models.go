package ai

// Narrative is the structured briefing returned by the model.
type Narrative struct {
	// Headline is a single sentence summarising the period.
	Headline string `json:"headline"`

	// Highlights are short bullet points, most important first.
	Highlights []string `json:"highlights"`

	// Model names the model that produced the text; set by the narrator, not the model.
	Model string `json:"model"`
}
