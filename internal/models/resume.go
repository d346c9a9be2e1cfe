package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID      uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	Filename       string    `json:"filename" gorm:"uniqueIndex;not null"` // generated storage name
	OriginalName   string    `json:"original_name" gorm:"not null"`
	ContentType    string    `json:"content_type" gorm:"not null"`
	SizeBytes      int64     `json:"size" gorm:"not null"`
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Skills         string    `json:"-" gorm:"type:text;not null;default:''"` // JSON array, "" when none
	WorkExperience *string   `json:"work_experience" gorm:"type:text"`
	Summary        *string   `json:"summary" gorm:"type:text"`
	UploadDate     time.Time `json:"upload_date" gorm:"index;not null"`
}

// ResumeView is the API shape of a Resume with skills decoded.
type ResumeView struct {
	ID             uint      `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Filename       string    `json:"filename"`
	OriginalName   string    `json:"original_name"`
	ContentType    string    `json:"content_type"`
	Size           int64     `json:"size"`
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Skills         []string  `json:"skills"`
	WorkExperience *string   `json:"work_experience"`
	Summary        *string   `json:"summary"`
	UploadDate     time.Time `json:"upload_date"`
}

// EncodeSkills stores skills as a JSON array, or "" when there are none.
func EncodeSkills(skills []string) (string, error) {
	if len(skills) == 0 {
		return "", nil
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSkills is lenient: a value that is not a JSON array comes back as a single skill.
func DecodeSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return []string{raw}
	}
	if skills == nil {
		return []string{}
	}
	return skills
}

func (r *Resume) View() ResumeView {
	return ResumeView{
		ID:             r.ID,
		UserID:         r.AccountID,
		Filename:       r.Filename,
		OriginalName:   r.OriginalName,
		ContentType:    r.ContentType,
		Size:           r.SizeBytes,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Skills:         DecodeSkills(r.Skills),
		WorkExperience: r.WorkExperience,
		Summary:        r.Summary,
		UploadDate:     r.UploadDate,
	}
}
