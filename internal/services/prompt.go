package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

// ComposePrompt builds the five-section coaching prompt. It is a pure
// function: identical inputs always produce an identical prompt, so metric
// maps are rendered in sorted key order.
func ComposePrompt(
	message string,
	fluency models.FluencyResult,
	sketch models.SketchInterpretation,
	image *models.MediaRef,
	isSketch bool,
) models.ComposedPrompt {
	system := buildSystemText(fluency, sketch, image != nil, isSketch)

	userParts := []models.PromptPart{
		{Type: models.PartText, Text: buildUserText(message)},
	}
	if image != nil {
		userParts = append(userParts, models.PromptPart{
			Type:     models.PartImage,
			ImageURI: image.DataURI(),
		})
	}

	return models.ComposedPrompt{
		Messages: []models.PromptMessage{
			{Role: "system", Parts: []models.PromptPart{{Type: models.PartText, Text: system}}},
			{Role: "user", Parts: userParts},
		},
		HasImage: image != nil,
	}
}

func buildSystemText(fluency models.FluencyResult, sketch models.SketchInterpretation, hasImage, isSketch bool) string {
	var b strings.Builder

	b.WriteString("You are an English-speaking coach helping ESL learners express themselves naturally and fluently.\n")
	b.WriteString("The learner provides either text or speech (with a fluency evaluation). ")
	if hasImage {
		if isSketch {
			b.WriteString("Refer to the attached sketch for visual context. ")
		} else {
			b.WriteString("Refer to the attached image for visual context. ")
		}
	}
	b.WriteString("\n\nPlease respond in **five short sections** with clear labels:\n\n")

	b.WriteString("1. **Fluency & Understanding** — Summarize what the learner said")
	if len(fluency) > 0 {
		b.WriteString(" and show their fluency results. Repeat these measured values exactly as written below, do not paraphrase or round them:\n")
		b.WriteString(fluencyLines(fluency))
	} else {
		b.WriteString(".\n(No fluency data provided)\n")
	}
	if desc := sketchDescription(sketch); desc != "" {
		b.WriteString("The learner's sketch was interpreted as: " + desc + "\n")
	}

	b.WriteString("\n2. **Better Expression** — Give your improved, natural English version.\n")
	b.WriteString("3. **Feedback** — Briefly list what was good and what can be improved.\n")
	b.WriteString("4. **Key Phrases** — Highlight 2-3 useful words or expressions from your version.\n")
	b.WriteString("5. **Speaking Tip** — One short, practical tip to improve pronunciation, rhythm, or clarity.\n\n")
	b.WriteString("Keep your tone encouraging and concise, like a friendly tutor giving actionable feedback.")

	return b.String()
}

func buildUserText(message string) string {
	if message == "" {
		return "The user did not provide any text. Please describe the situation based on the image."
	}
	return fmt.Sprintf("User's attempt: %q", message)
}

// fluencyLines renders the metric map verbatim, one "- key: value" per line,
// in sorted key order for stable output.
func fluencyLines(fluency models.FluencyResult) string {
	keys := make([]string, 0, len(fluency))
	for k := range fluency {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %v\n", k, fluency[k])
	}
	return b.String()
}

// sketchDescription extracts a human-readable description from the opaque
// interpretation, preferring the provider's description field.
func sketchDescription(sketch models.SketchInterpretation) string {
	if len(sketch) == 0 {
		return ""
	}
	if desc, ok := sketch["description"].(string); ok && desc != "" {
		return desc
	}

	keys := make([]string, 0, len(sketch))
	for k := range sketch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		// Skip bulky payloads like returned image bytes.
		if s, ok := sketch[k].(string); ok && len(s) > 256 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, sketch[k]))
	}
	if len(parts) == 0 {
		return "a converted realistic rendering of the sketch (attached)"
	}
	return strings.Join(parts, ", ")
}
