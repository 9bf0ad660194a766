package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mailer"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"github.com/gustmic/consulting-crm-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeProvider records sends and can be told to fail
type fakeProvider struct {
	sent []mailer.Message
	err  error
}

func (f *fakeProvider) Send(ctx context.Context, msg mailer.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "prov-123", nil
}

func setupEmailService(t *testing.T, provider mailer.Provider) (*service.EmailService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	contactRepo := repository.NewContactRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	svc := service.NewEmailService(provider, contactRepo, interactionRepo, "hello@gustmic.io", zap.NewNop())
	return svc, db
}

func TestEmailService_Send_LogsInteractionAndLastContacted(t *testing.T) {
	provider := &fakeProvider{}
	svc, db := setupEmailService(t, provider)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")

	resp, err := svc.Send(context.Background(), &domain.SendEmailRequest{
		ContactID: contact.ID,
		Subject:   "Proposal follow-up",
		Body:      "<p>Hi Kari</p>",
		FromEmail: "consultant@gustmic.io",
	})
	require.NoError(t, err)

	assert.Equal(t, "prov-123", resp.ProviderID)
	assert.NotEmpty(t, resp.InteractionID)

	require.Len(t, provider.sent, 1)
	assert.Equal(t, "kari@example.com", provider.sent[0].To)
	assert.Equal(t, "consultant@gustmic.io", provider.sent[0].From)

	var interactions []domain.Interaction
	require.NoError(t, db.Where("contact_id = ?", contact.ID).Find(&interactions).Error)
	require.Len(t, interactions, 1)
	assert.Equal(t, domain.InteractionTypeEmail, interactions[0].Type)
	assert.Equal(t, "Proposal follow-up", interactions[0].Subject)

	var stored domain.Contact
	require.NoError(t, db.First(&stored, "id = ?", contact.ID).Error)
	assert.NotNil(t, stored.LastContacted, "last_contacted is stamped in the same transaction")
}

func TestEmailService_Send_ProviderFailureWritesNothing(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream 500")}
	svc, db := setupEmailService(t, provider)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")

	_, err := svc.Send(context.Background(), &domain.SendEmailRequest{
		ContactID: contact.ID,
		Subject:   "Proposal follow-up",
		Body:      "<p>Hi Kari</p>",
	})
	assert.ErrorIs(t, err, service.ErrProviderFailure)

	var count int64
	require.NoError(t, db.Model(&domain.Interaction{}).Where("contact_id = ?", contact.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no interaction is logged for a failed send")

	var stored domain.Contact
	require.NoError(t, db.First(&stored, "id = ?", contact.ID).Error)
	assert.Nil(t, stored.LastContacted)
}

func TestEmailService_Send_DefaultsFromAddress(t *testing.T) {
	provider := &fakeProvider{}
	svc, db := setupEmailService(t, provider)
	contact := testutil.CreateTestContact(t, db, "Kari", "Nordmann", "kari@example.com")

	_, err := svc.Send(context.Background(), &domain.SendEmailRequest{
		ContactID: contact.ID,
		Subject:   "Hello",
		Body:      "Hi",
	})
	require.NoError(t, err)
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "hello@gustmic.io", provider.sent[0].From)
}

func TestEmailService_Send_ContactWithoutEmailRejected(t *testing.T) {
	provider := &fakeProvider{}
	svc, db := setupEmailService(t, provider)

	contact := &domain.Contact{FirstName: "No", LastName: "Email", Stage: domain.ContactStageLead}
	require.NoError(t, db.Create(contact).Error)

	_, err := svc.Send(context.Background(), &domain.SendEmailRequest{
		ContactID: contact.ID,
		Subject:   "Hello",
		Body:      "Hi",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Empty(t, provider.sent, "provider is never called for a contact without an address")
}
