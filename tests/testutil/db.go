package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory SQLite database and migrates
// the full schema. Every call returns a fresh database, so tests never
// see each other's rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open in-memory test database")

	// A pooled second connection would see its own empty memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.Company{},
		&domain.Contact{},
		&domain.Interaction{},
		&domain.Project{},
		&domain.Testimonial{},
		&domain.BlogPost{},
		&domain.User{},
		&domain.UserRole{},
		&domain.UserPreferences{},
	)
	require.NoError(t, err, "failed to migrate test schema")

	return db
}

// CreateTestContact inserts a contact with sensible defaults
func CreateTestContact(t *testing.T, db *gorm.DB, firstName, lastName, email string) *domain.Contact {
	t.Helper()

	contact := &domain.Contact{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     "12345678",
		Stage:     domain.ContactStageLead,
	}
	err := db.Create(contact).Error
	require.NoError(t, err)
	return contact
}

// CreateTestContactAtStage inserts a contact at a given pipeline stage
func CreateTestContactAtStage(t *testing.T, db *gorm.DB, stage domain.ContactStage, email string) *domain.Contact {
	t.Helper()

	contact := &domain.Contact{
		FirstName: "Test",
		LastName:  "Contact",
		Email:     email,
		Stage:     stage,
	}
	err := db.Create(contact).Error
	require.NoError(t, err)
	return contact
}

// CreateTestCompany inserts a company
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()

	company := &domain.Company{
		Name:    name,
		Website: "https://example.com",
	}
	err := db.Create(company).Error
	require.NoError(t, err)
	return company
}

// CreateTestProject inserts a project tied to a primary contact
func CreateTestProject(t *testing.T, db *gorm.DB, name string, primaryContactID *uuid.UUID) *domain.Project {
	t.Helper()

	project := &domain.Project{
		Name:             name,
		PrimaryContactID: primaryContactID,
		PipelineStatus:   domain.PipelineStatusMeetingBooked,
		Status:           domain.ProjectStatusPlanned,
	}
	err := db.Create(project).Error
	require.NoError(t, err)
	return project
}

// CreateTestInteraction inserts an interaction dated at the given time
func CreateTestInteraction(t *testing.T, db *gorm.DB, contactID uuid.UUID, interactionType domain.InteractionType, date time.Time) *domain.Interaction {
	t.Helper()

	interaction := &domain.Interaction{
		ContactID: contactID,
		Type:      interactionType,
		Date:      date,
		Subject:   "Test interaction",
	}
	err := db.Create(interaction).Error
	require.NoError(t, err)
	return interaction
}
