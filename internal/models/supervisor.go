package models

import "time"

// SupervisorModel is a Tier 2 Supervisor who reviews Fellow-led sessions.
type SupervisorModel struct {
	Base
	Name          string     `json:"name"            gorm:"not null"`
	Email         string     `json:"email"           gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"               gorm:"not null"`
	LastLoginTime *time.Time `json:"last_login_time"`
}

func (SupervisorModel) TableName() string { return "supervisors" }

// FellowModel is a lay provider (aged 18-22) who delivers the curriculum
// to a student group. Fellows are not clinicians.
type FellowModel struct {
	Base
	Name         string `json:"name"   gorm:"not null"`
	Cohort       string `json:"cohort"`
	SupervisorID string `json:"supervisor_id" gorm:"index;not null"`
}

func (FellowModel) TableName() string { return "fellows" }

// GroupModel is a student group a Fellow facilitates.
type GroupModel struct {
	Base
	Name     string `json:"name"   gorm:"not null"`
	School   string `json:"school"`
	FellowID string `json:"fellow_id" gorm:"index;not null"`
}

func (GroupModel) TableName() string { return "groups" }
