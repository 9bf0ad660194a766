package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/analytics"
	"github.com/gustmic/consulting-crm-api/internal/domain"
)

const timestampFormat = "2006-01-02T15:04:05Z"
const dateFormat = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(timestampFormat)
	return &s
}

// ToContactDTO converts Contact to ContactDTO. The tier is derived from
// the stored score so list views never recompute interactions.
func ToContactDTO(contact *domain.Contact) domain.ContactDTO {
	dto := domain.ContactDTO{
		ID:              contact.ID,
		FirstName:       contact.FirstName,
		LastName:        contact.LastName,
		FullName:        contact.FullName(),
		Email:           contact.Email,
		Phone:           contact.Phone,
		Title:           contact.Title,
		CompanyID:       contact.CompanyID,
		Stage:           contact.Stage,
		Tags:            contact.Tags,
		Notes:           contact.Notes,
		NextFollowup:    formatDate(contact.NextFollowup),
		LastContacted:   formatDate(contact.LastContacted),
		EngagementScore: contact.EngagementScore,
		EngagementTier:  analytics.EngagementTier(contact.EngagementScore),
		CreatedAt:       contact.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt:       contact.UpdatedAt.UTC().Format(timestampFormat),
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	if contact.Company != nil {
		dto.CompanyName = contact.Company.Name
	}
	return dto
}

// ToInteractionDTO converts Interaction to InteractionDTO
func ToInteractionDTO(interaction *domain.Interaction) domain.InteractionDTO {
	return domain.InteractionDTO{
		ID:        interaction.ID,
		ContactID: interaction.ContactID,
		Type:      interaction.Type,
		Date:      interaction.Date.Format(dateFormat),
		Subject:   interaction.Subject,
		Notes:     interaction.Notes,
		CreatedAt: interaction.CreatedAt.UTC().Format(timestampFormat),
	}
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:                 project.ID,
		Name:               project.Name,
		Type:               project.Type,
		Description:        project.Description,
		PrimaryContactID:   project.PrimaryContactID,
		PipelineStatus:     project.PipelineStatus,
		Status:             project.Status,
		ValueKr:            project.ValueKr,
		ProbabilityPercent: project.ProbabilityPercent,
		StartDate:          formatDate(project.StartDate),
		EndDate:            formatDate(project.EndDate),
		HourlyRate:         project.HourlyRate,
		ActualHours:        project.ActualHours,
		Notes:              project.Notes,
		CreatedAt:          project.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt:          project.UpdatedAt.UTC().Format(timestampFormat),
	}
	if project.PrimaryContact != nil {
		dto.PrimaryContactName = project.PrimaryContact.FullName()
	}
	if len(project.Contacts) > 0 {
		dto.ContactIDs = make([]uuid.UUID, len(project.Contacts))
		for i, c := range project.Contacts {
			dto.ContactIDs[i] = c.ID
		}
	}
	if len(project.Companies) > 0 {
		dto.CompanyIDs = make([]uuid.UUID, len(project.Companies))
		for i, c := range project.Companies {
			dto.CompanyIDs[i] = c.ID
		}
	}
	return dto
}

// ToCompanyDTO converts Company to CompanyDTO
func ToCompanyDTO(company *domain.Company) domain.CompanyDTO {
	return domain.CompanyDTO{
		ID:           company.ID,
		Name:         company.Name,
		Website:      company.Website,
		Notes:        company.Notes,
		ContactCount: len(company.Contacts),
		CreatedAt:    company.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt:    company.UpdatedAt.UTC().Format(timestampFormat),
	}
}

// ToTestimonialDTO converts Testimonial to TestimonialDTO
func ToTestimonialDTO(testimonial *domain.Testimonial) domain.TestimonialDTO {
	return domain.TestimonialDTO{
		ID:        testimonial.ID,
		Author:    testimonial.Author,
		Role:      testimonial.Role,
		Company:   testimonial.Company,
		Quote:     testimonial.Quote,
		Published: testimonial.Published,
		CreatedAt: testimonial.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt: testimonial.UpdatedAt.UTC().Format(timestampFormat),
	}
}

// ToBlogPostDTO converts BlogPost to BlogPostDTO
func ToBlogPostDTO(post *domain.BlogPost) domain.BlogPostDTO {
	return domain.BlogPostDTO{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		Body:        post.Body,
		Published:   post.Published,
		PublishedAt: formatTimestamp(post.PublishedAt),
		AuthorName:  post.AuthorName,
		CreatedAt:   post.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt:   post.UpdatedAt.UTC().Format(timestampFormat),
	}
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r.Role)
	}
	return domain.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
		IsActive:    user.IsActive,
		LastLoginAt: formatTimestamp(user.LastLoginAt),
	}
}

// ToUserPreferencesDTO converts UserPreferences to UserPreferencesDTO
func ToUserPreferencesDTO(prefs *domain.UserPreferences) domain.UserPreferencesDTO {
	return domain.UserPreferencesDTO{
		UserID:       prefs.UserID,
		ItemsPerPage: prefs.ItemsPerPage,
		DateFormat:   prefs.DateFormat,
		Theme:        prefs.Theme,
	}
}
