package models

// ChatRequest is the raw payload accepted by the chat endpoint. Fields are
// optional at the wire level; NewChatInput enforces the real requirements.
type ChatRequest struct {
	Message      string `json:"message"`
	ImageURL     string `json:"imageUrl"`
	IsSketch     bool   `json:"isSketch"`
	AudioDataURI string `json:"audioDataUri"`
}

// ChatInput is a validated chat request. It can only be obtained through
// NewChatInput, so a ChatInput always satisfies the message-or-image rule
// and every media field it carries decoded cleanly.
type ChatInput struct {
	Message  string
	Image    *MediaRef
	IsSketch bool
	Audio    *MediaRef
}

// NewChatInput validates a ChatRequest and converts it into a typed input.
func NewChatInput(req ChatRequest) (ChatInput, error) {
	if req.Message == "" && req.ImageURL == "" {
		return ChatInput{}, &ValidationError{Message: "Either message or imageUrl is required"}
	}

	in := ChatInput{
		Message:  req.Message,
		IsSketch: req.IsSketch,
	}

	if req.ImageURL != "" {
		ref, err := ParseDataURI(req.ImageURL)
		if err != nil {
			return ChatInput{}, &ValidationError{Message: "Invalid imageUrl: " + err.Error()}
		}
		in.Image = &ref
	}

	if req.AudioDataURI != "" {
		ref, err := ParseDataURI(req.AudioDataURI)
		if err != nil {
			return ChatInput{}, &ValidationError{Message: "Invalid audioDataUri: " + err.Error()}
		}
		in.Audio = &ref
	}

	return in, nil
}

// FluencyResult is the opaque metric map returned by the fluency provider.
// It lives for a single request and is echoed verbatim into the prompt.
type FluencyResult map[string]interface{}

// SketchInterpretation is the opaque result of the sketch-conversion provider.
type SketchInterpretation map[string]interface{}

// CoachingResponse is the reply from the chat flow.
type CoachingResponse struct {
	Message string        `json:"message"`
	Fluency FluencyResult `json:"fluency"`
	Success bool          `json:"success"`
}

// TranscribeResponse is the reply from the transcription endpoint.
type TranscribeResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

// FluencyResponse is the reply from the standalone fluency endpoint.
type FluencyResponse struct {
	Fluency FluencyResult `json:"fluency"`
	Success bool          `json:"success"`
}

// SketchResponse is the reply from the sketch-conversion endpoint.
type SketchResponse struct {
	Result  SketchInterpretation `json:"result"`
	Success bool                 `json:"success"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationError marks a malformed or incomplete client request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
