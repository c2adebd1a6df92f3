package services

import (
	"context"
	"log"
	"sync"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

// FluencyScorer evaluates spoken audio into an opaque metric map.
type FluencyScorer interface {
	ScoreFluency(ctx context.Context, audio models.MediaRef) (models.FluencyResult, error)
}

// SketchConverter interprets a sketch image.
type SketchConverter interface {
	ConvertSketch(ctx context.Context, image models.MediaRef) (models.SketchInterpretation, error)
}

// ChatCompleter produces the assistant reply for a composed prompt.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt models.ComposedPrompt) (string, error)
}

// Orchestrator runs the conversation flow: optional enrichment, prompt
// composition, then the chat call. Enrichment failures degrade the response;
// only the chat call is fatal.
type Orchestrator struct {
	fluency FluencyScorer
	sketch  SketchConverter
	chat    ChatCompleter
}

func NewOrchestrator(fluency FluencyScorer, sketch SketchConverter, chat ChatCompleter) *Orchestrator {
	return &Orchestrator{
		fluency: fluency,
		sketch:  sketch,
		chat:    chat,
	}
}

// Converse handles one validated chat request end to end.
func (o *Orchestrator) Converse(ctx context.Context, in models.ChatInput) (*models.CoachingResponse, error) {
	var (
		wg          sync.WaitGroup
		fluencyData models.FluencyResult
		sketchData  models.SketchInterpretation
	)

	// The two enrichment steps are independent; run them concurrently and
	// absorb their failures. The prompt is composed either way.
	if in.Audio != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := o.fluency.ScoreFluency(ctx, *in.Audio)
			if err != nil {
				log.Printf("WARNING: fluency enrichment failed, continuing without it: %v", err)
				return
			}
			fluencyData = result
		}()
	}

	if in.IsSketch && in.Image != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := o.sketch.ConvertSketch(ctx, *in.Image)
			if err != nil {
				log.Printf("WARNING: sketch enrichment failed, continuing without it: %v", err)
				return
			}
			sketchData = result
		}()
	}

	wg.Wait()

	prompt := ComposePrompt(in.Message, fluencyData, sketchData, in.Image, in.IsSketch)

	reply, err := o.chat.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.CoachingResponse{
		Message: reply,
		Fluency: fluencyData,
		Success: true,
	}, nil
}
