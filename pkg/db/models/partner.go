package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/angelmondragon/partnerhub-backend/pkg/db/types"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Partner is an onboarding entity moving through the pipeline. Rows are never
// hard-deleted; the pipeline stage (including "inactive") is the lifecycle.
type Partner struct {
	ID                   uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	PartnerCode          string               `gorm:"column:partner_code;uniqueIndex;not null"`
	Type                 enums.PartnerType    `gorm:"column:type;not null"`
	CompanyName          string               `gorm:"column:company_name;not null"`
	ContactName          string               `gorm:"column:contact_name;not null"`
	Email                string               `gorm:"column:email;not null"`
	Phone                *string              `gorm:"column:phone"`
	City                 *string              `gorm:"column:city"`
	State                *string              `gorm:"column:state"`
	PipelineStage        string               `gorm:"column:pipeline_stage;not null;index"`
	InitialReviewStatus  enums.ReviewStatus   `gorm:"column:initial_review_status;not null"`
	PostCallReviewStatus enums.ReviewStatus   `gorm:"column:post_call_review_status;not null"`
	LOIStatus            enums.DocumentStatus `gorm:"column:loi_status;not null"`
	ContractStatus       enums.DocumentStatus `gorm:"column:contract_status;not null"`
	NDAStatus            enums.DocumentStatus `gorm:"column:nda_status;not null"`
	SkipReason           *string              `gorm:"column:skip_reason"`
	SkippedStages        dbtypes.StringList   `gorm:"column:skipped_stages;type:text"`
	TrialStartDate       *time.Time           `gorm:"column:trial_start_date"`
	TrialEndDate         *time.Time           `gorm:"column:trial_end_date"`
	TipaltiPayeeID       *string              `gorm:"column:tipalti_payee_id"`
	TipaltiStatus        *string              `gorm:"column:tipalti_status"`
	ProspectID           *uuid.UUID           `gorm:"column:prospect_id;type:uuid"`
	Notes                *string              `gorm:"column:notes"`
	Venues               []Venue              `gorm:"foreignKey:PartnerID"`
	CreatedAt            time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Partner) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// PartnerActivity is the append-only audit trail of pipeline decisions.
type PartnerActivity struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID     uuid.UUID          `gorm:"column:partner_id;type:uuid;not null;index"`
	Kind          string             `gorm:"column:kind;not null"`
	FromStage     string             `gorm:"column:from_stage"`
	ToStage       string             `gorm:"column:to_stage"`
	SkipReason    *string            `gorm:"column:skip_reason"`
	SkippedStages dbtypes.StringList `gorm:"column:skipped_stages;type:text"`
	ActorID       *string            `gorm:"column:actor_id"`
	Note          *string            `gorm:"column:note"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (a *PartnerActivity) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
