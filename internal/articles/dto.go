package articles

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// ArticleDTO is the admin view of an article.
type ArticleDTO struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Slug            string              `json:"slug"`
	Excerpt         *string             `json:"excerpt,omitempty"`
	Body            string              `json:"body"`
	AuthorName      string              `json:"author_name"`
	AuthorPartnerID *uuid.UUID          `json:"author_partner_id,omitempty"`
	Status          enums.ArticleStatus `json:"status"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	PublishedAt     *time.Time          `json:"published_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// PublicArticleDTO omits moderation fields.
type PublicArticleDTO struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	AuthorName  string     `json:"author_name"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func FromModel(m models.Article) ArticleDTO {
	return ArticleDTO{
		ID:              m.ID,
		Title:           m.Title,
		Slug:            m.Slug,
		Excerpt:         m.Excerpt,
		Body:            m.Body,
		AuthorName:      m.AuthorName,
		AuthorPartnerID: m.AuthorPartnerID,
		Status:          m.Status,
		RejectionReason: m.RejectionReason,
		PublishedAt:     m.PublishedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func publicFromModel(m models.Article) PublicArticleDTO {
	return PublicArticleDTO{
		Title:       m.Title,
		Slug:        m.Slug,
		Excerpt:     m.Excerpt,
		Body:        m.Body,
		AuthorName:  m.AuthorName,
		PublishedAt: m.PublishedAt,
	}
}

// SubmitInput is a partner-authored article draft.
type SubmitInput struct {
	PartnerID  uuid.UUID
	AuthorName string
	Title      string
	Excerpt    *string
	Body       string
}

// UpdateInput applies an admin edit. Status and content fields may be sent together.
type UpdateInput struct {
	Status          *enums.ArticleStatus
	Title           *string
	Excerpt         *string
	Body            *string
	RejectionReason *string
}
