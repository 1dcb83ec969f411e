package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/textgen"
)

// Per-batch contact cap. The loop is deliberately sequential: one failure
// affects only its own contact, and the generation provider never sees a
// burst of parallel calls.
const maxOutreachBatch = 10

const outreachSystemPrompt = "You write short, personalized cold-outreach messages for a local " +
	"trade business. Two or three sentences, plain text, no subject line."

type OutreachContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
}

type GenerateOutreachInput struct {
	UserID   string            `json:"-"`
	Contacts []OutreachContact `json:"contacts"`
}

type OutreachResult struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type GenerateOutreachOutput struct {
	Success bool             `json:"success"`
	Results []OutreachResult `json:"results"`
}

type GenerateOutreachUseCase struct {
	Targets   entity.OutreachRepositoryInterface
	Profiles  entity.ProfileRepositoryInterface
	Generator TextGenerator
}

func NewGenerateOutreachUseCase(
	targets entity.OutreachRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	generator TextGenerator,
) *GenerateOutreachUseCase {
	return &GenerateOutreachUseCase{Targets: targets, Profiles: profiles, Generator: generator}
}

func (uc *GenerateOutreachUseCase) Execute(ctx context.Context, input GenerateOutreachInput) (*GenerateOutreachOutput, error) {
	if len(input.Contacts) == 0 {
		return nil, invalid("contacts is required")
	}

	profile, err := uc.Profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, notFound("profile not found")
	}

	contacts := input.Contacts
	if len(contacts) > maxOutreachBatch {
		contacts = contacts[:maxOutreachBatch]
	}

	output := &GenerateOutreachOutput{Success: true, Results: []OutreachResult{}}

	for _, contact := range contacts {
		target, err := uc.Targets.FindByUserAndEmail(ctx, input.UserID, contact.Email)
		if err != nil {
			// No matching target means this contact was never imported; skip,
			// the batch does not create targets.
			log.Printf("[OUTREACH] no target for %s, skipping", contact.Email)
			continue
		}

		message, err := uc.generateFor(ctx, profile, contact)
		if err != nil {
			log.Printf("[OUTREACH] generation failed for %s: %v", contact.Email, err)
			if updErr := uc.Targets.UpdateStatus(ctx, target.ID, entity.OutreachStatusFailed, ""); updErr != nil {
				log.Printf("[OUTREACH] failed to mark target %s failed: %v", target.ID, updErr)
			}
			continue
		}

		if err := uc.Targets.UpdateStatus(ctx, target.ID, entity.OutreachStatusSent, message); err != nil {
			log.Printf("[OUTREACH] failed to mark target %s sent: %v", target.ID, err)
			continue
		}
		output.Results = append(output.Results, OutreachResult{Email: contact.Email, Message: message})
	}

	return output, nil
}

func (uc *GenerateOutreachUseCase) generateFor(ctx context.Context, profile *entity.Profile, contact OutreachContact) (string, error) {
	prompt := fmt.Sprintf(
		"Write a cold-outreach message from %s, a %s business serving %s, to %s",
		profile.BusinessName, profile.Trade, profile.ServiceArea, contact.Name,
	)
	if contact.Company != "" {
		prompt += fmt.Sprintf(" at %s", contact.Company)
	}
	prompt += ". Introduce the business and invite them to reply for a free quote."

	return uc.Generator.Generate(ctx, outreachSystemPrompt, prompt, textgen.Options{
		MaxOutputTokens: 300,
		Temperature:     0.7,
	})
}
