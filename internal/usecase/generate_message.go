package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/textgen"
)

const (
	MessageTypeInitial  = "initial"
	MessageTypeFollowup = "followup"
)

const messageSystemPrompt = "You write short, professional customer messages on behalf of a " +
	"local trade business. Plain text only, no markdown, no subject line."

type GenerateMessageInput struct {
	LeadID string `json:"leadId"`
	Type   string `json:"type"`

	// UserID is set by authenticated callers for an ownership check. The
	// queue worker leaves it empty; it acts on leads it has no session for.
	UserID string `json:"-"`
}

type GenerateMessageOutput struct {
	Message *entity.LeadMessage `json:"message"`
}

type GenerateMessageUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Messages  entity.LeadMessageRepositoryInterface
	Profiles  entity.ProfileRepositoryInterface
	Settings  entity.SettingsRepositoryInterface
	Generator TextGenerator
}

func NewGenerateMessageUseCase(
	leads entity.LeadRepositoryInterface,
	messages entity.LeadMessageRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	settings entity.SettingsRepositoryInterface,
	generator TextGenerator,
) *GenerateMessageUseCase {
	return &GenerateMessageUseCase{
		Leads:     leads,
		Messages:  messages,
		Profiles:  profiles,
		Settings:  settings,
		Generator: generator,
	}
}

func (uc *GenerateMessageUseCase) Execute(ctx context.Context, input GenerateMessageInput) (*GenerateMessageOutput, error) {
	if input.LeadID == "" {
		return nil, invalid("leadId is required")
	}
	if input.Type != MessageTypeInitial && input.Type != MessageTypeFollowup {
		return nil, invalid("type must be initial or followup")
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, notFound("lead not found")
	}
	if input.UserID != "" && lead.UserID != input.UserID {
		return nil, notFound("lead not found")
	}

	profile, err := uc.Profiles.FindByID(ctx, lead.UserID)
	if err != nil {
		return nil, notFound("profile not found for lead owner")
	}

	// Per-user prompt templates are optional; absence is not an error.
	settings, err := uc.Settings.FindByUserID(ctx, lead.UserID)
	if err != nil {
		settings = &entity.UserSettings{}
	}

	var prompt string
	if input.Type == MessageTypeInitial {
		prompt = buildInitialPrompt(lead, profile, settings)
	} else {
		history, err := uc.Messages.FindByLeadID(ctx, lead.ID)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load conversation: " + err.Error()}
		}
		prompt = buildFollowupPrompt(lead, settings, history)
	}

	text, err := uc.Generator.Generate(ctx, messageSystemPrompt, prompt, textgen.Options{
		MaxOutputTokens: 400,
		Temperature:     0.7,
	})
	if err != nil {
		return nil, upstream("message generation failed: " + err.Error())
	}

	msg := entity.NewLeadMessage(lead.ID, entity.MessageRoleAI, strings.TrimSpace(text))
	if err := uc.Messages.Create(ctx, msg); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to save message: " + err.Error()}
	}

	// Initial generation marks the lead contacted regardless of its current
	// status, including completed/lost. Intentionally preserved behavior;
	// see DESIGN.md before changing.
	if input.Type == MessageTypeInitial {
		if err := uc.Leads.UpdateStatus(ctx, lead.ID, entity.LeadStatusContacted); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead status: " + err.Error()}
		}
	}

	return &GenerateMessageOutput{Message: msg}, nil
}

func buildInitialPrompt(lead *entity.Lead, profile *entity.Profile, settings *entity.UserSettings) string {
	template := settings.InitialPrompt
	if template == "" {
		template = entity.DefaultInitialPrompt
	}

	service := lead.ServiceRequested
	if service == "" {
		service = profile.Trade + " services"
	}

	r := strings.NewReplacer(
		"{trade}", profile.Trade,
		"{service}", service,
		"{name}", lead.Name,
	)
	prompt := r.Replace(template)

	if lead.Message != "" {
		prompt += fmt.Sprintf("\n\nThe customer wrote: %q", lead.Message)
	}
	return prompt
}

func buildFollowupPrompt(lead *entity.Lead, settings *entity.UserSettings, history []*entity.LeadMessage) string {
	template := settings.FollowupPrompt
	if template == "" {
		template = entity.DefaultFollowupPrompt
	}

	var sb strings.Builder
	sb.WriteString(template)
	sb.WriteString("\n\nConversation so far:\n")
	for _, msg := range history {
		speaker := "Lead"
		if msg.Role != entity.MessageRoleLead {
			speaker = "You"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, msg.Content)
	}
	sb.WriteString("\nWrite the next message from You.")
	return sb.String()
}
