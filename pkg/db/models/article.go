package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Article is a blog post moderated by admins.
type Article struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Title           string              `gorm:"column:title;not null"`
	Slug            string              `gorm:"column:slug;uniqueIndex;not null"`
	Excerpt         *string             `gorm:"column:excerpt"`
	Body            string              `gorm:"column:body;type:text;not null"`
	AuthorName      string              `gorm:"column:author_name;not null"`
	AuthorPartnerID *uuid.UUID          `gorm:"column:author_partner_id;type:uuid"`
	Status          enums.ArticleStatus `gorm:"column:status;not null;index"`
	RejectionReason *string             `gorm:"column:rejection_reason"`
	PublishedAt     *time.Time          `gorm:"column:published_at"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Article) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
