package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

const DefaultRemixModel = "stable-video-diffusion-mock"

// RemixGenerator stands in for an external AI video generation API
// (Replicate, RunwayML). The real integration is a collaborator concern;
// this mock derives a new asset URL synchronously.
type RemixGenerator struct {
	Logger    *log.Logger
	ModelName string
}

func NewRemixGenerator(logger *log.Logger, modelName string) *RemixGenerator {
	if modelName == "" {
		modelName = DefaultRemixModel
	}
	return &RemixGenerator{Logger: logger, ModelName: modelName}
}

// GenerateRemix produces the URL of the generated derivative video. The
// context is honored so a cancelled request does not leave work running.
func (g *RemixGenerator) GenerateRemix(ctx context.Context, originalURL string, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.Logger.Printf("Generating remix of %s with prompt %q (model %s)", originalURL, prompt, g.ModelName)

	return fmt.Sprintf("/static/remix_%s.mp4", uuid.New()), nil
}
