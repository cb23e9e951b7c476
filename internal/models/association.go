package models

// ProjectSprint links a sprint to the project that owns it.
type ProjectSprint struct {
	ProjectID uint `gorm:"column:ProjectID;primaryKey;autoIncrement:false"`
	SprintID  uint `gorm:"column:SprintID;primaryKey;autoIncrement:false;index"`
}

func (ProjectSprint) TableName() string { return "ProjectSprint" }

// PartOf links a task to the sprint that owns it.
type PartOf struct {
	SprintID uint `gorm:"column:SprintID;primaryKey;autoIncrement:false"`
	TaskID   uint `gorm:"column:TaskID;primaryKey;autoIncrement:false;index"`
}

func (PartOf) TableName() string { return "PartOf" }

// ContributesTo records that a member works on a project, with an optional role.
type ContributesTo struct {
	ProjectID uint   `gorm:"column:ProjectID;primaryKey;autoIncrement:false"`
	MemberID  uint   `gorm:"column:MemberID;primaryKey;autoIncrement:false;index"`
	Role      string `gorm:"column:role;size:64"`
}

func (ContributesTo) TableName() string { return "ContributesTo" }
