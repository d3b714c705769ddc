// Package geminiapi contains the raw wire types for the generateContent
// endpoint, reduced to the text-only subset this integration uses.
package geminiapi

type GenerateContentParams struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts,omitempty"`
	Role  string `json:"role,omitempty"`
}

type Part struct {
	Text string `json:"text,omitempty"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}
