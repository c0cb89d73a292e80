// file: internals/features/defense/schedules/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ScheduleStatusEnum merepresentasikan status jadwal sidang.
// Disimpan sebagai string bebas supaya kompatibel dengan data lama.
type ScheduleStatusEnum string

const (
	ScheduleScheduled ScheduleStatusEnum = "scheduled"
	ScheduleOngoing   ScheduleStatusEnum = "ongoing"
	ScheduleCompleted ScheduleStatusEnum = "completed"
	ScheduleCanceled  ScheduleStatusEnum = "canceled"
	ScheduleArchived  ScheduleStatusEnum = "archived"
)

type DefenseScheduleModel struct {
	DefenseScheduleID uuid.UUID `gorm:"column:defense_schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"defense_schedule_id"`

	// referensi kelompok skripsi + cache judul (biar list tidak perlu join)
	DefenseScheduleGroupID         uuid.UUID `gorm:"column:defense_schedule_group_id;type:uuid;not null;index" json:"defense_schedule_group_id"`
	DefenseScheduleGroupTitleCache *string   `gorm:"column:defense_schedule_group_title_cache;type:varchar(200)" json:"defense_schedule_group_title_cache,omitempty"`

	DefenseScheduleScheduledAt time.Time `gorm:"column:defense_schedule_scheduled_at;type:timestamptz;not null;index" json:"defense_schedule_scheduled_at"`
	DefenseScheduleRoom        *string   `gorm:"column:defense_schedule_room;type:varchar(100)" json:"defense_schedule_room,omitempty"`

	DefenseScheduleStatus ScheduleStatusEnum `gorm:"column:defense_schedule_status;type:varchar(20);not null;default:'scheduled'" json:"defense_schedule_status"`

	// dokumen wajib yang harus dibawa saat sidang (text[])
	DefenseScheduleRequiredDocs pq.StringArray `gorm:"column:defense_schedule_required_docs;type:text[]" json:"defense_schedule_required_docs,omitempty"`

	DefenseScheduleCreatedBy uuid.UUID `gorm:"column:defense_schedule_created_by;type:uuid;not null" json:"defense_schedule_created_by"`

	DefenseScheduleCreatedAt time.Time      `gorm:"column:defense_schedule_created_at;type:timestamptz;not null;autoCreateTime" json:"defense_schedule_created_at"`
	DefenseScheduleUpdatedAt time.Time      `gorm:"column:defense_schedule_updated_at;type:timestamptz;not null;autoUpdateTime" json:"defense_schedule_updated_at"`
	DefenseScheduleDeletedAt gorm.DeletedAt `gorm:"column:defense_schedule_deleted_at;index" json:"defense_schedule_deleted_at,omitempty"`
}

func (DefenseScheduleModel) TableName() string { return "defense_schedules" }
