package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ContactStage represents where a contact sits in the relationship pipeline
type ContactStage string

const (
	ContactStageLead     ContactStage = "Lead"
	ContactStageProspect ContactStage = "Prospect"
	ContactStageProposal ContactStage = "Proposal"
	ContactStageContract ContactStage = "Contract"
	ContactStageClient   ContactStage = "Client"
)

// ContactStageOrder is the fixed pipeline order, earliest to latest.
// The conversion funnel and the admin board both depend on this ordering.
var ContactStageOrder = []ContactStage{
	ContactStageLead,
	ContactStageProspect,
	ContactStageProposal,
	ContactStageContract,
	ContactStageClient,
}

// IsValid checks if the ContactStage is a valid enum value
func (cs ContactStage) IsValid() bool {
	switch cs {
	case ContactStageLead, ContactStageProspect, ContactStageProposal, ContactStageContract, ContactStageClient:
		return true
	}
	return false
}

// Contact represents an individual person in the CRM
type Contact struct {
	BaseModel
	FirstName       string                      `gorm:"type:varchar(100);not null;column:first_name"`
	LastName        string                      `gorm:"type:varchar(100);not null;column:last_name"`
	Email           string                      `gorm:"type:varchar(255);uniqueIndex"`
	Phone           string                      `gorm:"type:varchar(50)"`
	Title           string                      `gorm:"type:varchar(100)"`
	CompanyID       *uuid.UUID                  `gorm:"type:uuid;column:company_id;index"`
	Company         *Company                    `gorm:"foreignKey:CompanyID"`
	Stage           ContactStage                `gorm:"type:varchar(50);not null;default:'Lead';index"`
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags"`
	Notes           string                      `gorm:"type:text"`
	NextFollowup    *time.Time                  `gorm:"type:date;column:next_followup"`
	LastContacted   *time.Time                  `gorm:"type:date;column:last_contacted"`
	EngagementScore int                         `gorm:"not null;default:0;column:engagement_score"`
	Interactions    []Interaction               `gorm:"foreignKey:ContactID"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// InteractionType represents the kind of touchpoint logged for a contact
type InteractionType string

const (
	InteractionTypeEmail   InteractionType = "Email"
	InteractionTypeCall    InteractionType = "Call"
	InteractionTypeMeeting InteractionType = "Meeting"
	InteractionTypeNote    InteractionType = "Note"
)

// IsValid checks if the InteractionType is a valid enum value
func (it InteractionType) IsValid() bool {
	switch it {
	case InteractionTypeEmail, InteractionTypeCall, InteractionTypeMeeting, InteractionTypeNote:
		return true
	}
	return false
}

// Interaction is an immutable touchpoint log entry for a contact.
// Rows are only ever inserted; there is no update or delete path.
type Interaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ContactID uuid.UUID       `gorm:"type:uuid;not null;index;column:contact_id"`
	Contact   *Contact        `gorm:"foreignKey:ContactID"`
	Type      InteractionType `gorm:"type:varchar(50);not null"`
	Date      time.Time       `gorm:"not null;index"`
	Subject   string          `gorm:"type:varchar(200)"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PipelineStatus represents the sales state of a project.
// Won and Lost are terminal.
type PipelineStatus string

const (
	PipelineStatusMeetingBooked PipelineStatus = "Meeting Booked"
	PipelineStatusProposalSent  PipelineStatus = "Proposal Sent"
	PipelineStatusWon           PipelineStatus = "Won"
	PipelineStatusLost          PipelineStatus = "Lost"
)

// IsValid checks if the PipelineStatus is a valid enum value
func (ps PipelineStatus) IsValid() bool {
	switch ps {
	case PipelineStatusMeetingBooked, PipelineStatusProposalSent, PipelineStatusWon, PipelineStatusLost:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from the status
func (ps PipelineStatus) IsTerminal() bool {
	return ps == PipelineStatusWon || ps == PipelineStatusLost
}

// ProjectStatus represents the delivery state of a project,
// independent of the pipeline status once the project is won
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "Planned"
	ProjectStatusOngoing   ProjectStatus = "Ongoing"
	ProjectStatusCompleted ProjectStatus = "Completed"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectStatusPlanned, ProjectStatusOngoing, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project represents a consulting engagement or pipeline opportunity
type Project struct {
	BaseModel
	Name               string         `gorm:"type:varchar(200);not null;index"`
	Type               string         `gorm:"type:varchar(100);index"`
	Description        string         `gorm:"type:text"`
	PrimaryContactID   *uuid.UUID     `gorm:"type:uuid;column:primary_contact_id;index"`
	PrimaryContact     *Contact       `gorm:"foreignKey:PrimaryContactID"`
	Contacts           []Contact      `gorm:"many2many:project_contacts"`
	Companies          []Company      `gorm:"many2many:project_companies"`
	PipelineStatus     PipelineStatus `gorm:"type:varchar(50);not null;default:'Meeting Booked';index;column:pipeline_status"`
	Status             ProjectStatus  `gorm:"type:varchar(50);not null;default:'Planned';index"`
	ValueKr            float64        `gorm:"type:decimal(15,2);not null;default:0;column:value_kr"`
	ProbabilityPercent int            `gorm:"not null;default:0;column:probability_percent"`
	StartDate          *time.Time     `gorm:"type:date;column:start_date"`
	EndDate            *time.Time     `gorm:"type:date;column:end_date"`
	HourlyRate         *float64       `gorm:"type:decimal(10,2);column:hourly_rate"`
	ActualHours        float64        `gorm:"type:decimal(10,2);not null;default:0;column:actual_hours"`
	Notes              string         `gorm:"type:text"`
}

// Company represents an organization contacts and projects are tied to
type Company struct {
	BaseModel
	Name     string    `gorm:"type:varchar(200);not null;index"`
	Website  string    `gorm:"type:varchar(500)"`
	Notes    string    `gorm:"type:text"`
	Contacts []Contact `gorm:"foreignKey:CompanyID"`
	Projects []Project `gorm:"many2many:project_companies"`
}

// Testimonial is a client quote shown on the public site when published
type Testimonial struct {
	BaseModel
	Author    string `gorm:"type:varchar(200);not null"`
	Role      string `gorm:"type:varchar(200)"`
	Company   string `gorm:"type:varchar(200)"`
	Quote     string `gorm:"type:text;not null"`
	Published bool   `gorm:"not null;default:false;index"`
}

// BlogPost is an article authored in the admin panel
type BlogPost struct {
	BaseModel
	Title       string     `gorm:"type:varchar(200);not null"`
	Slug        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Excerpt     string     `gorm:"type:varchar(500)"`
	Body        string     `gorm:"type:text;not null"`
	Published   bool       `gorm:"not null;default:false;index"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	AuthorName  string     `gorm:"type:varchar(200);column:author_name"`
}

// UserRoleType represents a role a user can have
type UserRoleType string

const (
	RoleAdmin UserRoleType = "admin"
	RoleUser  UserRoleType = "user"
)

// IsValid checks if the UserRoleType is a valid enum value
func (r UserRoleType) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account that can sign in to the admin panel
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName  string     `gorm:"type:varchar(200);not null;column:display_name"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	Roles        []UserRole `gorm:"foreignKey:UserID"`
}

// HasRole checks if the user has a specific role assigned
func (u *User) HasRole(role UserRoleType) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// UserRole is a role assignment row; (user_id, role) is unique
type UserRole struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_user_roles_user_role,unique;column:user_id"`
	User      *User        `gorm:"foreignKey:UserID"`
	Role      UserRoleType `gorm:"type:varchar(50);not null;index:idx_user_roles_user_role,unique"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// UserPreferences holds display settings; at most one row per user
type UserPreferences struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id"`
	ItemsPerPage int       `gorm:"not null;default:20;column:items_per_page"`
	DateFormat   string    `gorm:"type:varchar(50);not null;default:'2006-01-02';column:date_format"`
	Theme        string    `gorm:"type:varchar(20);not null;default:'light'"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
