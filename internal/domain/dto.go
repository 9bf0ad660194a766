package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContactDTO struct {
	ID              uuid.UUID    `json:"id"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	FullName        string       `json:"fullName"`
	Email           string       `json:"email,omitempty"`
	Phone           string       `json:"phone,omitempty"`
	Title           string       `json:"title,omitempty"`
	CompanyID       *uuid.UUID   `json:"companyId,omitempty"`
	CompanyName     string       `json:"companyName,omitempty"`
	Stage           ContactStage `json:"stage"`
	Tags            []string     `json:"tags"`
	Notes           string       `json:"notes,omitempty"`
	NextFollowup    *string      `json:"nextFollowup,omitempty"`
	LastContacted   *string      `json:"lastContacted,omitempty"`
	EngagementScore int          `json:"engagementScore"`
	EngagementTier  string       `json:"engagementTier"`
	CreatedAt       string       `json:"createdAt"` // ISO 8601
	UpdatedAt       string       `json:"updatedAt"` // ISO 8601
}

type InteractionDTO struct {
	ID        uuid.UUID       `json:"id"`
	ContactID uuid.UUID       `json:"contactId"`
	Type      InteractionType `json:"type"`
	Date      string          `json:"date"`
	Subject   string          `json:"subject,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

type ProjectDTO struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Type               string         `json:"type,omitempty"`
	Description        string         `json:"description,omitempty"`
	PrimaryContactID   *uuid.UUID     `json:"primaryContactId,omitempty"`
	PrimaryContactName string         `json:"primaryContactName,omitempty"`
	ContactIDs         []uuid.UUID    `json:"contactIds,omitempty"`
	CompanyIDs         []uuid.UUID    `json:"companyIds,omitempty"`
	PipelineStatus     PipelineStatus `json:"pipelineStatus"`
	Status             ProjectStatus  `json:"status"`
	ValueKr            float64        `json:"valueKr"`
	ProbabilityPercent int            `json:"probabilityPercent"`
	StartDate          *string        `json:"startDate,omitempty"`
	EndDate            *string        `json:"endDate,omitempty"`
	HourlyRate         *float64       `json:"hourlyRate,omitempty"`
	ActualHours        float64        `json:"actualHours"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          string         `json:"createdAt"`
	UpdatedAt          string         `json:"updatedAt"`
}

type CompanyDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Website      string    `json:"website,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	ContactCount int       `json:"contactCount"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type TestimonialDTO struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role,omitempty"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote"`
	Published bool      `json:"published"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type BlogPostDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	Published   bool      `json:"published"`
	PublishedAt *string   `json:"publishedAt,omitempty"`
	AuthorName  string    `json:"authorName,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Roles       []string  `json:"roles"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt *string   `json:"lastLoginAt,omitempty"`
}

type UserPreferencesDTO struct {
	UserID       uuid.UUID `json:"userId"`
	ItemsPerPage int       `json:"itemsPerPage"`
	DateFormat   string    `json:"dateFormat"`
	Theme        string    `json:"theme"`
}

// PaginatedResponse wraps list responses with paging metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request payloads

type CreateContactRequest struct {
	FirstName    string     `json:"firstName" validate:"required,max=100"`
	LastName     string     `json:"lastName" validate:"required,max=100"`
	Email        string     `json:"email" validate:"omitempty,email,max=255"`
	Phone        string     `json:"phone" validate:"omitempty,max=50"`
	Title        string     `json:"title" validate:"omitempty,max=100"`
	CompanyID    *uuid.UUID `json:"companyId"`
	Stage        ContactStage `json:"stage" validate:"omitempty,oneof=Lead Prospect Proposal Contract Client"`
	Tags         []string   `json:"tags"`
	Notes        string     `json:"notes"`
	NextFollowup *time.Time `json:"nextFollowup"`
}

type UpdateContactRequest struct {
	FirstName    string     `json:"firstName" validate:"required,max=100"`
	LastName     string     `json:"lastName" validate:"required,max=100"`
	Email        string     `json:"email" validate:"omitempty,email,max=255"`
	Phone        string     `json:"phone" validate:"omitempty,max=50"`
	Title        string     `json:"title" validate:"omitempty,max=100"`
	CompanyID    *uuid.UUID `json:"companyId"`
	Tags         []string   `json:"tags"`
	Notes        string     `json:"notes"`
	NextFollowup *time.Time `json:"nextFollowup"`
}

type UpdateContactStageRequest struct {
	Stage ContactStage `json:"stage" validate:"required,oneof=Lead Prospect Proposal Contract Client"`
}

type CreateInteractionRequest struct {
	ContactID uuid.UUID       `json:"contactId" validate:"required"`
	Type      InteractionType `json:"type" validate:"required,oneof=Email Call Meeting Note"`
	Date      *time.Time      `json:"date"`
	Subject   string          `json:"subject" validate:"omitempty,max=200"`
	Notes     string          `json:"notes"`
}

type CreateProjectRequest struct {
	Name               string      `json:"name" validate:"required,max=200"`
	Type               string      `json:"type" validate:"omitempty,max=100"`
	Description        string      `json:"description"`
	PrimaryContactID   *uuid.UUID  `json:"primaryContactId"`
	ContactIDs         []uuid.UUID `json:"contactIds"`
	CompanyIDs         []uuid.UUID `json:"companyIds"`
	ValueKr            float64     `json:"valueKr" validate:"gte=0"`
	ProbabilityPercent int         `json:"probabilityPercent" validate:"gte=0,lte=100"`
	StartDate          *time.Time  `json:"startDate"`
	EndDate            *time.Time  `json:"endDate"`
	HourlyRate         *float64    `json:"hourlyRate" validate:"omitempty,gt=0"`
	Notes              string      `json:"notes"`
}

type UpdateProjectRequest struct {
	Name               string        `json:"name" validate:"required,max=200"`
	Type               string        `json:"type" validate:"omitempty,max=100"`
	Description        string        `json:"description"`
	PrimaryContactID   *uuid.UUID    `json:"primaryContactId"`
	ContactIDs         []uuid.UUID   `json:"contactIds"`
	CompanyIDs         []uuid.UUID   `json:"companyIds"`
	Status             ProjectStatus `json:"status" validate:"omitempty,oneof=Planned Ongoing Completed"`
	ValueKr            float64       `json:"valueKr" validate:"gte=0"`
	ProbabilityPercent int           `json:"probabilityPercent" validate:"gte=0,lte=100"`
	StartDate          *time.Time    `json:"startDate"`
	EndDate            *time.Time    `json:"endDate"`
	HourlyRate         *float64      `json:"hourlyRate" validate:"omitempty,gt=0"`
	ActualHours        *float64      `json:"actualHours" validate:"omitempty,gte=0"`
	Notes              string        `json:"notes"`
}

// UpdatePipelineStatusRequest moves a project between pipeline stages.
// Transitions to Lost must set Confirm; transitions to Won are rejected
// here and must go through WinProjectRequest instead.
type UpdatePipelineStatusRequest struct {
	PipelineStatus PipelineStatus `json:"pipelineStatus" validate:"required"`
	Confirm        bool           `json:"confirm"`
}

// WinProjectRequest commits a project as Won together with the
// confirmed value and dates in a single write.
type WinProjectRequest struct {
	ValueKr   float64    `json:"valueKr" validate:"required,gt=0"`
	StartDate *time.Time `json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate"`
}

type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Website string `json:"website" validate:"omitempty,url,max=500"`
	Notes   string `json:"notes"`
}

type UpdateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Website string `json:"website" validate:"omitempty,url,max=500"`
	Notes   string `json:"notes"`
}

type CreateTestimonialRequest struct {
	Author    string `json:"author" validate:"required,max=200"`
	Role      string `json:"role" validate:"omitempty,max=200"`
	Company   string `json:"company" validate:"omitempty,max=200"`
	Quote     string `json:"quote" validate:"required"`
	Published bool   `json:"published"`
}

type CreateBlogPostRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Slug      string `json:"slug" validate:"required,max=200"`
	Excerpt   string `json:"excerpt" validate:"omitempty,max=500"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

type UpdateBlogPostRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Slug      string `json:"slug" validate:"required,max=200"`
	Excerpt   string `json:"excerpt" validate:"omitempty,max=500"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

type UpsertPreferencesRequest struct {
	ItemsPerPage int    `json:"itemsPerPage" validate:"required,gte=5,lte=200"`
	DateFormat   string `json:"dateFormat" validate:"required,max=50"`
	Theme        string `json:"theme" validate:"required,oneof=light dark system"`
}

type SendEmailRequest struct {
	ContactID uuid.UUID `json:"contactId" validate:"required"`
	Subject   string    `json:"subject" validate:"required,max=200"`
	Body      string    `json:"body" validate:"required"`
	FromEmail string    `json:"fromEmail" validate:"required,email"`
}

type SendEmailResponse struct {
	ProviderID    string `json:"providerId,omitempty"`
	InteractionID string `json:"interactionId"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"`
	User      UserDTO `json:"user"`
}

// InquiryRequest is the public contact-form payload from the marketing site
type InquiryRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Analytics response shapes

// FunnelStageDTO is a per-stage funnel row. ConversionRate is nil for the
// first stage (no previous stage to convert from).
type FunnelStageDTO struct {
	Stage          ContactStage `json:"stage"`
	Count          int          `json:"count"`
	ConversionRate *int         `json:"conversionRate,omitempty"`
}

type VelocityStageDTO struct {
	Stage   ContactStage `json:"stage"`
	AvgDays float64      `json:"avgDays"`
}

type ServiceProfitabilityDTO struct {
	ServiceType        string  `json:"serviceType"`
	ProjectCount       int     `json:"projectCount"`
	TotalRevenue       float64 `json:"totalRevenue"`
	EstimatedHours     int     `json:"estimatedHours"`
	ActualHours        int     `json:"actualHours"`
	TotalCost          float64 `json:"totalCost"`
	ProfitMarginPercent int    `json:"profitMarginPercent"`
	UtilizationPercent  int    `json:"utilizationPercent"`
}

type EngagementDTO struct {
	ContactID uuid.UUID `json:"contactId"`
	Score     int       `json:"score"`
	Tier      string    `json:"tier"`
}

type CapacityRowDTO struct {
	ServiceType    string `json:"serviceType"`
	ActiveProjects int    `json:"activeProjects"`
	Cap            int    `json:"cap"`
	AvailableSlots int    `json:"availableSlots"`
}
