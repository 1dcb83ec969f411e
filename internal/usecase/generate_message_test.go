package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradestack/tradestack-api/internal/entity"
)

func messageFixture(gen TextGenerator) (*GenerateMessageUseCase, *MockLeadRepository, *MockLeadMessageRepository, *MockSettingsRepository) {
	leads := new(MockLeadRepository)
	messages := new(MockLeadMessageRepository)
	profiles := new(MockProfileRepository)
	settings := new(MockSettingsRepository)

	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{
		ID:           "user-1",
		BusinessName: "Ace Plumbing",
		Trade:        "plumbing",
	}, nil).Maybe()

	return NewGenerateMessageUseCase(leads, messages, profiles, settings, gen), leads, messages, settings
}

func sampleLead(status string) *entity.Lead {
	return &entity.Lead{
		ID:               "lead-1",
		UserID:           "user-1",
		Name:             "Dana",
		Email:            "dana@example.com",
		ServiceRequested: "water heater",
		Message:          "My water heater is leaking.",
		Status:           status,
	}
}

func TestGenerateMessage_InitialSavesReplyAndMarksContacted(t *testing.T) {
	gen := &stubGenerator{response: "Hi Dana, thanks for reaching out!"}
	uc, leads, messages, settings := messageFixture(gen)

	leads.On("FindByID", mock.Anything, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	settings.On("FindByUserID", mock.Anything, "user-1").Return(nil, errors.New("no rows"))
	messages.On("Create", mock.Anything, mock.MatchedBy(func(m *entity.LeadMessage) bool {
		return m.LeadID == "lead-1" && m.Role == entity.MessageRoleAI && m.Content != ""
	})).Return(nil)
	leads.On("UpdateStatus", mock.Anything, "lead-1", entity.LeadStatusContacted).Return(nil)

	output, err := uc.Execute(context.Background(), GenerateMessageInput{LeadID: "lead-1", Type: MessageTypeInitial})

	assert.NoError(t, err)
	assert.Equal(t, "Hi Dana, thanks for reaching out!", output.Message.Content)
	leads.AssertExpectations(t)
	messages.AssertExpectations(t)
}

func TestGenerateMessage_InitialAlwaysMarksContacted(t *testing.T) {
	// Even a completed lead flips back to contacted on initial generation.
	gen := &stubGenerator{response: "Hello again!"}
	uc, leads, messages, settings := messageFixture(gen)

	leads.On("FindByID", mock.Anything, "lead-1").Return(sampleLead(entity.LeadStatusCompleted), nil)
	settings.On("FindByUserID", mock.Anything, "user-1").Return(nil, errors.New("no rows"))
	messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	leads.On("UpdateStatus", mock.Anything, "lead-1", entity.LeadStatusContacted).Return(nil)

	_, err := uc.Execute(context.Background(), GenerateMessageInput{LeadID: "lead-1", Type: MessageTypeInitial})

	assert.NoError(t, err)
	leads.AssertCalled(t, "UpdateStatus", mock.Anything, "lead-1", entity.LeadStatusContacted)
}

func TestGenerateMessage_FollowupUsesHistoryAndKeepsStatus(t *testing.T) {
	gen := &stubGenerator{response: "Just checking in, Dana."}
	uc, leads, messages, settings := messageFixture(gen)

	leads.On("FindByID", mock.Anything, "lead-1").Return(sampleLead(entity.LeadStatusContacted), nil)
	settings.On("FindByUserID", mock.Anything, "user-1").Return(&entity.UserSettings{UserID: "user-1"}, nil)
	messages.On("FindByLeadID", mock.Anything, "lead-1").Return([]*entity.LeadMessage{
		{LeadID: "lead-1", Role: entity.MessageRoleAI, Content: "Hi Dana!"},
		{LeadID: "lead-1", Role: entity.MessageRoleLead, Content: "How much would it cost?"},
	}, nil)
	messages.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), GenerateMessageInput{LeadID: "lead-1", Type: MessageTypeFollowup})

	assert.NoError(t, err)
	leads.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateMessage_OwnershipCheck(t *testing.T) {
	uc, leads, _, _ := messageFixture(&stubGenerator{response: "x"})

	leads.On("FindByID", mock.Anything, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)

	_, err := uc.Execute(context.Background(), GenerateMessageInput{
		LeadID: "lead-1",
		Type:   MessageTypeInitial,
		UserID: "someone-else",
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestGenerateMessage_InvalidType(t *testing.T) {
	uc, _, _, _ := messageFixture(&stubGenerator{})

	_, err := uc.Execute(context.Background(), GenerateMessageInput{LeadID: "lead-1", Type: "reminder"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
}
