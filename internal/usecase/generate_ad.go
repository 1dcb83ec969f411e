package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/textgen"
)

const adSystemPrompt = "You are a marketing copywriter for local home-service businesses. " +
	"Always respond with valid JSON and nothing else."

type GenerateAdInput struct {
	UserID  string `json:"-"`
	Service string `json:"service"`
	City    string `json:"city"`
	Tone    string `json:"tone"`
}

type GenerateAdOutput struct {
	Template *entity.AdTemplate `json:"template"`
}

type GenerateAdUseCase struct {
	Templates entity.AdTemplateRepositoryInterface
	Generator TextGenerator
}

func NewGenerateAdUseCase(templates entity.AdTemplateRepositoryInterface, generator TextGenerator) *GenerateAdUseCase {
	return &GenerateAdUseCase{Templates: templates, Generator: generator}
}

func (uc *GenerateAdUseCase) Execute(ctx context.Context, input GenerateAdInput) (*GenerateAdOutput, error) {
	if strings.TrimSpace(input.Service) == "" {
		return nil, invalid("service is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return nil, invalid("city is required")
	}
	tone := input.Tone
	if tone == "" {
		tone = "friendly"
	}

	prompt := fmt.Sprintf(
		`Write ad copy for a local %s business in %s. Tone: %s.
Return a JSON object with exactly these fields:
{"headline": "...", "body": "...", "facebook_caption": "...", "nextdoor_caption": "...", "instagram_caption": "..."}
Headline under 10 words. Body 2-3 sentences. Each caption under 200 characters.`,
		input.Service, input.City, tone,
	)

	raw, err := uc.Generator.Generate(ctx, adSystemPrompt, prompt, textgen.Options{
		MaxOutputTokens: 600,
		Temperature:     0.8,
	})
	if err != nil {
		return nil, upstream("ad generation failed: " + err.Error())
	}

	parsed := ParseAdCopy(raw, input.Service, input.City)

	template := entity.NewAdTemplate(input.UserID, input.Service, input.City, tone)
	template.Headline = parsed.Headline
	template.Body = parsed.Body
	template.FacebookCaption = parsed.FacebookCaption
	template.NextdoorCaption = parsed.NextdoorCaption
	template.InstagramCaption = parsed.InstagramCaption

	if err := uc.Templates.Create(ctx, template); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to save template: " + err.Error()}
	}

	return &GenerateAdOutput{Template: template}, nil
}
