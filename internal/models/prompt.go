package models

// Content part types understood by the chat provider.
const (
	PartText  = "text"
	PartImage = "image_url"
)

// PromptPart is one content block inside a prompt message.
type PromptPart struct {
	Type     string
	Text     string
	ImageURI string
}

// PromptMessage is a role-tagged sequence of content parts.
type PromptMessage struct {
	Role  string // "system" or "user"
	Parts []PromptPart
}

// ComposedPrompt is the fully assembled instructional prompt for one request.
// It is built once by the composer and consumed once by the chat adapter.
type ComposedPrompt struct {
	Messages []PromptMessage
	HasImage bool
}
