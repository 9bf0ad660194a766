package service_test

import (
	"context"
	"testing"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"github.com/gustmic/consulting-crm-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInquiryService(t *testing.T) (*service.InquiryService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	contactRepo := repository.NewContactRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	return service.NewInquiryService(contactRepo, interactionRepo, zap.NewNop()), db
}

func TestInquiryService_Submit_NewSenderBecomesLead(t *testing.T) {
	svc, db := setupInquiryService(t)

	err := svc.Submit(context.Background(), &domain.InquiryRequest{
		Name:    "Kari Marie Nordmann",
		Email:   "kari@example.com",
		Company: "Nordmann AS",
		Message: "We need help with our data platform.",
	})
	require.NoError(t, err)

	var contact domain.Contact
	require.NoError(t, db.First(&contact, "email = ?", "kari@example.com").Error)
	assert.Equal(t, "Kari", contact.FirstName)
	assert.Equal(t, "Marie Nordmann", contact.LastName)
	assert.Equal(t, domain.ContactStageLead, contact.Stage)

	var interactions []domain.Interaction
	require.NoError(t, db.Where("contact_id = ?", contact.ID).Find(&interactions).Error)
	require.Len(t, interactions, 1)
	assert.Equal(t, domain.InteractionTypeNote, interactions[0].Type)
	assert.Equal(t, "Website inquiry", interactions[0].Subject)
	assert.Equal(t, "We need help with our data platform.", interactions[0].Notes)
}

func TestInquiryService_Submit_KnownSenderKeepsStage(t *testing.T) {
	svc, db := setupInquiryService(t)
	existing := testutil.CreateTestContactAtStage(t, db, domain.ContactStageProposal, "kari@example.com")

	err := svc.Submit(context.Background(), &domain.InquiryRequest{
		Name:    "Kari Nordmann",
		Email:   "kari@example.com",
		Message: "Following up on the proposal.",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "no duplicate contact is created")

	var stored domain.Contact
	require.NoError(t, db.First(&stored, "id = ?", existing.ID).Error)
	assert.Equal(t, domain.ContactStageProposal, stored.Stage, "an inquiry never moves an existing contact back to Lead")

	var interactions []domain.Interaction
	require.NoError(t, db.Where("contact_id = ?", existing.ID).Find(&interactions).Error)
	assert.Len(t, interactions, 1)
}

func TestInquiryService_Submit_SingleWordName(t *testing.T) {
	svc, db := setupInquiryService(t)

	err := svc.Submit(context.Background(), &domain.InquiryRequest{
		Name:    "Kari",
		Email:   "kari@example.com",
		Message: "Hello",
	})
	require.NoError(t, err)

	var contact domain.Contact
	require.NoError(t, db.First(&contact, "email = ?", "kari@example.com").Error)
	assert.Equal(t, "Kari", contact.FirstName)
	assert.Equal(t, "", contact.LastName)
}
