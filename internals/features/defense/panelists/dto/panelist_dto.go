// file: internals/features/defense/panelists/dto/panelist_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sidangku_backend/internals/features/defense/panelists/model"
	svc "sidangku_backend/internals/features/defense/panelists/service"
)

type PanelistResponse struct {
	SchedulePanelistID         uuid.UUID `json:"schedule_panelist_id"`
	SchedulePanelistScheduleID uuid.UUID `json:"schedule_panelist_schedule_id"`
	SchedulePanelistStaffID    uuid.UUID `json:"schedule_panelist_staff_id"`
	SchedulePanelistCreatedAt  time.Time `json:"schedule_panelist_created_at"`
}

func FromModel(m *model.SchedulePanelistModel) PanelistResponse {
	return PanelistResponse{
		SchedulePanelistID:         m.SchedulePanelistID,
		SchedulePanelistScheduleID: m.SchedulePanelistScheduleID,
		SchedulePanelistStaffID:    m.SchedulePanelistStaffID,
		SchedulePanelistCreatedAt:  m.SchedulePanelistCreatedAt,
	}
}

func FromModels(ms []model.SchedulePanelistModel) []PanelistResponse {
	out := make([]PanelistResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

type AssignPanelistsRequest struct {
	StaffIDs []string `json:"staff_ids" validate:"required,min=1,dive,required"`
}

type AssignPanelistsResponse struct {
	Created       []PanelistResponse `json:"created"`
	CreatedCount  int                `json:"created_count"`
	ExistingCount int                `json:"existing_count"`
	Errors        []svc.ItemError    `json:"errors,omitempty"`
}
