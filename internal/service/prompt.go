package service

import "encoding/base64"

// The two instruction strings below are the contract with the completion
// endpoint. The Fees-column rule in the user instruction is enforced only
// through this text, never locally, so the wording must stay stable.

const systemInstruction = "You are an expert financial data analyst. Your task is to accurately " +
	"extract all bank transactions from the provided PDF statement image. " +
	"Your final output MUST be a CSV table with three columns: Date, Description, Amount. " +
	"The Date must be in YYYY-MM-DD format. " +
	"The Amount must be a number with two decimal places. Debits must be negative, Credits positive."

const userInstruction = "Process the attached bank statement. EXTRACT ALL individual transaction line items. " +
	"CRITICAL INSTRUCTION: If the statement has a column specifically labeled 'Fees', " +
	"DO NOT use the amounts from that dedicated column in the final 'Amount' column. " +
	"However, INCLUDE any fee-related transactions (e.g., 'Service Fee', 'ATM Fee') " +
	"that appear as a separate line item in the main debit/credit columns."

// ChatMessage is one role-tagged block of the prompt payload. Content is a
// plain string for the system block and a []ContentPart for the user block.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal user block.
type ContentPart struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL *DocumentRef `json:"image_url,omitempty"`
}

// DocumentRef carries the base64 data URL of the uploaded statement plus the
// rendering-quality hint.
type DocumentRef struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// EncodeStatement converts the uploaded bytes into their transport-safe
// base64 form. Empty input yields an empty string, the "no document" signal.
func EncodeStatement(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// BuildExtractionPrompt assembles the fixed two-block payload: the system
// instruction followed by the user instruction with exactly one document
// reference. Returns nil when no encoded document is supplied.
func BuildExtractionPrompt(encoded string) []ChatMessage {
	if encoded == "" {
		return nil
	}

	return []ChatMessage{
		{
			Role:    "system",
			Content: systemInstruction,
		},
		{
			Role: "user",
			Content: []ContentPart{
				{
					Type: "text",
					Text: userInstruction,
				},
				{
					Type: "image_url",
					ImageURL: &DocumentRef{
						URL:    "data:application/pdf;base64," + encoded,
						Detail: "high",
					},
				},
			},
		},
	}
}
