// Package lab holds the research-institution entities and their resource descriptors.
package lab

// Faculty is the top-level academic unit.
type Faculty struct {
	FacultyID   int64  `json:"faculty_id" gorm:"column:faculty_id;primaryKey;autoIncrement"`
	FacultyName string `json:"faculty_name" gorm:"column:faculty_name;size:150;not null;uniqueIndex" validate:"required,max=150"`
}

func (Faculty) TableName() string { return "faculties" }

// Domain is a scientific domain a laboratory works in.
type Domain struct {
	DomainID   int64  `json:"domain_id" gorm:"column:domain_id;primaryKey;autoIncrement"`
	DomainName string `json:"domain_name" gorm:"column:domain_name;size:150;not null;uniqueIndex" validate:"required,max=150"`
}

func (Domain) TableName() string { return "domains" }

// Department belongs to a faculty.
type Department struct {
	DeptID    int64  `json:"dept_id" gorm:"column:dept_id;primaryKey;autoIncrement"`
	DeptName  string `json:"dept_name" gorm:"column:dept_name;size:150;not null" validate:"required,max=150"`
	FacultyID int64  `json:"faculty_id" gorm:"column:faculty_id;not null;index" validate:"required,gt=0"`

	Faculty *Faculty `json:"faculty,omitempty" gorm:"foreignKey:FacultyID;references:FacultyID" validate:"-"`
}

func (Department) TableName() string { return "departments" }

// Laboratory is the unit most resources are scoped to.
type Laboratory struct {
	LabCode   int64  `json:"lab_code" gorm:"column:lab_code;primaryKey;autoIncrement"`
	LabName   string `json:"lab_name" gorm:"column:lab_name;size:200;not null" validate:"required,max=200"`
	FacultyID int64  `json:"faculty_id" gorm:"column:faculty_id;not null;index" validate:"required,gt=0"`
	DomainID  int64  `json:"domain_id" gorm:"column:domain_id;not null;index" validate:"required,gt=0"`
	DeptID    int64  `json:"dept_id" gorm:"column:dept_id;not null;index" validate:"required,gt=0"`

	Faculty    *Faculty    `json:"faculty,omitempty" gorm:"foreignKey:FacultyID;references:FacultyID" validate:"-"`
	Domain     *Domain     `json:"domain,omitempty" gorm:"foreignKey:DomainID;references:DomainID" validate:"-"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DeptID;references:DeptID" validate:"-"`
}

func (Laboratory) TableName() string { return "laboratories" }

// Team is a research team inside a laboratory. LeaderID references a researcher.
type Team struct {
	TeamID   int64  `json:"team_id" gorm:"column:team_id;primaryKey;autoIncrement"`
	TeamName string `json:"team_name" gorm:"column:team_name;size:150;not null" validate:"required,max=150"`
	LabCode  int64  `json:"lab_code" gorm:"column:lab_code;not null;index" validate:"required,gt=0"`
	LeaderID *int64 `json:"leader_id" gorm:"column:leader_id;index" validate:"omitempty,gt=0"`

	Laboratory *Laboratory `json:"laboratory,omitempty" gorm:"foreignKey:LabCode;references:LabCode" validate:"-"`
}

func (Team) TableName() string { return "teams" }
