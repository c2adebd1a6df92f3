package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

func systemText(t *testing.T, p models.ComposedPrompt) string {
	t.Helper()
	require.Len(t, p.Messages, 2)
	require.Equal(t, "system", p.Messages[0].Role)
	require.Len(t, p.Messages[0].Parts, 1)
	return p.Messages[0].Parts[0].Text
}

func TestComposePrompt_FiveSections(t *testing.T) {
	p := ComposePrompt("I go to school yesterday", nil, nil, nil, false)
	sys := systemText(t, p)

	for _, label := range []string{
		"Fluency & Understanding",
		"Better Expression",
		"Feedback",
		"Key Phrases",
		"Speaking Tip",
	} {
		assert.Contains(t, sys, label)
	}
	assert.Contains(t, sys, "(No fluency data provided)")
	assert.False(t, p.HasImage)
}

func TestComposePrompt_EchoesFluencyVerbatim(t *testing.T) {
	fluency := models.FluencyResult{
		"Fluency":      0.78,
		"Level":        "Advanced",
		"Timing_Score": 0.85,
	}

	p := ComposePrompt("hello", fluency, nil, nil, false)
	sys := systemText(t, p)

	assert.Contains(t, sys, "- Fluency: 0.78")
	assert.Contains(t, sys, "- Level: Advanced")
	assert.Contains(t, sys, "- Timing_Score: 0.85")
	assert.Contains(t, sys, "do not paraphrase")
	assert.NotContains(t, sys, "(No fluency data provided)")
}

func TestComposePrompt_Deterministic(t *testing.T) {
	fluency := models.FluencyResult{
		"Fluency": 0.78, "Level": "Advanced", "SR": 129.9, "AR": 165.5,
		"PR": 0.21, "LPF": 2.3, "MLFR": 8.5, "N_words": 55,
	}

	first := ComposePrompt("hi", fluency, nil, nil, false)
	for i := 0; i < 20; i++ {
		again := ComposePrompt("hi", fluency, nil, nil, false)
		require.Equal(t, first, again)
	}
}

func TestComposePrompt_SketchDescriptionInAcknowledgment(t *testing.T) {
	sketch := models.SketchInterpretation{"description": "a dog chasing a ball in a park"}
	image := &models.MediaRef{MIMEType: "image/png", Data: []byte("png")}

	p := ComposePrompt("my drawing", nil, sketch, image, true)
	sys := systemText(t, p)

	// The description lands inside section 1, before section 2.
	idx := strings.Index(sys, "a dog chasing a ball in a park")
	require.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, strings.Index(sys, "Better Expression"))
	assert.Contains(t, sys, "attached sketch")
}

func TestComposePrompt_ImagePart(t *testing.T) {
	image := &models.MediaRef{MIMEType: "image/png", Data: []byte("png")}

	p := ComposePrompt("what is this", nil, nil, image, false)
	require.True(t, p.HasImage)

	user := p.Messages[1]
	require.Equal(t, "user", user.Role)
	require.Len(t, user.Parts, 2)
	assert.Equal(t, models.PartText, user.Parts[0].Type)
	assert.Equal(t, models.PartImage, user.Parts[1].Type)
	assert.True(t, strings.HasPrefix(user.Parts[1].ImageURI, "data:image/png;base64,"))
}

func TestComposePrompt_NoMessageFallsBackToImageInstruction(t *testing.T) {
	image := &models.MediaRef{MIMEType: "image/jpeg", Data: []byte("jpg")}

	p := ComposePrompt("", nil, nil, image, false)
	user := p.Messages[1]
	assert.Contains(t, user.Parts[0].Text, "did not provide any text")
}
