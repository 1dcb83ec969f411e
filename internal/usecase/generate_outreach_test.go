package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradestack/tradestack-api/internal/entity"
)

func outreachFixture(gen TextGenerator) (*GenerateOutreachUseCase, *MockOutreachRepository, *MockProfileRepository) {
	targets := new(MockOutreachRepository)
	profiles := new(MockProfileRepository)
	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{
		ID:           "user-1",
		BusinessName: "Ace Plumbing",
		Trade:        "plumbing",
		ServiceArea:  "Austin",
	}, nil)
	return NewGenerateOutreachUseCase(targets, profiles, gen), targets, profiles
}

func TestGenerateOutreach_BatchCappedAtTen(t *testing.T) {
	gen := &stubGenerator{response: "Hi there, this is Ace Plumbing."}
	uc, targets, _ := outreachFixture(gen)

	var contacts []OutreachContact
	for i := 0; i < 12; i++ {
		email := fmt.Sprintf("c%d@example.com", i)
		contacts = append(contacts, OutreachContact{Name: "Contact", Email: email})
		targets.On("FindByUserAndEmail", mock.Anything, "user-1", email).Return(&entity.OutreachTarget{
			ID:    fmt.Sprintf("t%d", i),
			Email: email,
		}, nil).Maybe()
		targets.On("UpdateStatus", mock.Anything, fmt.Sprintf("t%d", i), entity.OutreachStatusSent, mock.Anything).Return(nil).Maybe()
	}

	output, err := uc.Execute(context.Background(), GenerateOutreachInput{UserID: "user-1", Contacts: contacts})

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Len(t, output.Results, 10)
	assert.Equal(t, 10, gen.calls)
}

func TestGenerateOutreach_UnknownContactSkipped(t *testing.T) {
	gen := &stubGenerator{response: "Hello!"}
	uc, targets, _ := outreachFixture(gen)

	targets.On("FindByUserAndEmail", mock.Anything, "user-1", "known@example.com").Return(&entity.OutreachTarget{ID: "t1"}, nil)
	targets.On("FindByUserAndEmail", mock.Anything, "user-1", "stranger@example.com").Return(nil, errors.New("no rows"))
	targets.On("UpdateStatus", mock.Anything, "t1", entity.OutreachStatusSent, "Hello!").Return(nil)

	output, err := uc.Execute(context.Background(), GenerateOutreachInput{
		UserID: "user-1",
		Contacts: []OutreachContact{
			{Name: "Known", Email: "known@example.com"},
			{Name: "Stranger", Email: "stranger@example.com"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, output.Results, 1)
	assert.Equal(t, "known@example.com", output.Results[0].Email)
}

func TestGenerateOutreach_OneFailureDoesNotAbortBatch(t *testing.T) {
	// Generator fails on the first call only.
	gen := &flakyGenerator{failFirst: true, response: "Hi from Ace."}
	uc, targets, _ := outreachFixture(gen)

	targets.On("FindByUserAndEmail", mock.Anything, "user-1", "a@example.com").Return(&entity.OutreachTarget{ID: "ta"}, nil)
	targets.On("FindByUserAndEmail", mock.Anything, "user-1", "b@example.com").Return(&entity.OutreachTarget{ID: "tb"}, nil)
	targets.On("UpdateStatus", mock.Anything, "ta", entity.OutreachStatusFailed, "").Return(nil)
	targets.On("UpdateStatus", mock.Anything, "tb", entity.OutreachStatusSent, "Hi from Ace.").Return(nil)

	output, err := uc.Execute(context.Background(), GenerateOutreachInput{
		UserID: "user-1",
		Contacts: []OutreachContact{
			{Name: "A", Email: "a@example.com"},
			{Name: "B", Email: "b@example.com"},
		},
	})

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Len(t, output.Results, 1)
	assert.Equal(t, "b@example.com", output.Results[0].Email)
	targets.AssertExpectations(t)
}

func TestGenerateOutreach_EmptyContacts(t *testing.T) {
	uc, _, _ := outreachFixture(&stubGenerator{})

	_, err := uc.Execute(context.Background(), GenerateOutreachInput{UserID: "user-1"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
}
