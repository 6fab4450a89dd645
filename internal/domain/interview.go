package domain

import "time"

type InterviewStatus string

const (
	StatusPending    InterviewStatus = "pending"
	StatusScheduled  InterviewStatus = "scheduled"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
	StatusCancelled  InterviewStatus = "cancelled"
)

type Interview struct {
	InterviewID       string          `json:"interview_id"`
	ApplicationID     string          `json:"application_id"`
	ConfigID          string          `json:"config_id"`
	Status            InterviewStatus `json:"status"`
	ScheduledDate     *time.Time      `json:"scheduled_date"`
	ExpirationDate    time.Time       `json:"expiration_date"`
	VideoRecordingURL *string         `json:"video_recording_url"`
	CreatedAt         time.Time       `json:"created_at"`
}

type CreateInterview struct {
	ApplicationID     string           `json:"application_id" validate:"required,uuid"`
	ConfigID          string           `json:"config_id" validate:"required,uuid"`
	Status            *InterviewStatus `json:"status" validate:"omitempty,oneof=pending scheduled in_progress completed cancelled"`
	ScheduledDate     *DateTime        `json:"scheduled_date"`
	ExpirationDate    *DateTime        `json:"expiration_date" validate:"required"`
	VideoRecordingURL *string          `json:"video_recording_url" validate:"omitempty,url,max=255"`
}

func (in *CreateInterview) Build() *Interview {
	i := &Interview{
		ApplicationID:     in.ApplicationID,
		ConfigID:          in.ConfigID,
		Status:            StatusPending,
		ScheduledDate:     in.ScheduledDate.stored(),
		VideoRecordingURL: in.VideoRecordingURL,
	}
	if in.Status != nil {
		i.Status = *in.Status
	}
	if in.ExpirationDate != nil {
		i.ExpirationDate = *in.ExpirationDate.stored()
	}
	return i
}

type UpdateInterview struct {
	ApplicationID     *string          `json:"application_id" validate:"omitempty,uuid"`
	ConfigID          *string          `json:"config_id" validate:"omitempty,uuid"`
	Status            *InterviewStatus `json:"status" validate:"omitempty,oneof=pending scheduled in_progress completed cancelled"`
	ScheduledDate     *DateTime        `json:"scheduled_date"`
	ExpirationDate    *DateTime        `json:"expiration_date"`
	VideoRecordingURL *string          `json:"video_recording_url" validate:"omitempty,url,max=255"`
}

func (in *UpdateInterview) Apply(i *Interview) {
	setIf(&i.ApplicationID, in.ApplicationID)
	setIf(&i.ConfigID, in.ConfigID)
	setIf(&i.Status, in.Status)
	if in.ScheduledDate != nil {
		i.ScheduledDate = in.ScheduledDate.stored()
	}
	setIf(&i.ExpirationDate, in.ExpirationDate.stored())
	setPtrIf(&i.VideoRecordingURL, in.VideoRecordingURL)
}

type UpdateInterviewStatus struct {
	Status InterviewStatus `json:"status" validate:"required,oneof=pending scheduled in_progress completed cancelled"`
}
