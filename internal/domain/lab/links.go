package lab

import (
	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/errors"
)

const (
	RoleDirector   = "director"
	RoleCoDirector = "co_director"
)

// Assignment records a piece of equipment lent to a researcher.
type Assignment struct {
	InventoryNum   string       `json:"inventory_num" gorm:"column:inventory_num;primaryKey;size:50" validate:"required,max=50"`
	ResID          int64        `json:"res_id" gorm:"column:res_id;primaryKey;autoIncrement:false" validate:"required,gt=0"`
	AssignmentDate biztime.Date `json:"assignment_date" gorm:"column:assignment_date;not null" validate:"required"`
	ReturnDate     biztime.Date `json:"return_date" gorm:"column:return_date"`

	Equipment  *Equipment  `json:"equipment,omitempty" gorm:"foreignKey:InventoryNum;references:InventoryNum" validate:"-"`
	Researcher *Researcher `json:"researcher,omitempty" gorm:"foreignKey:ResID;references:ResID" validate:"-"`
}

func (Assignment) TableName() string { return "assignments" }

// CheckFields rejects a return date earlier than the assignment date.
func (a *Assignment) CheckFields() []errors.FieldError {
	if !a.ReturnDate.IsZero() && !a.AssignmentDate.IsZero() && a.ReturnDate.Before(a.AssignmentDate) {
		return []errors.FieldError{{Field: "return_date", Message: "return_date must not be before assignment_date"}}
	}
	return nil
}

// Supervision links a researcher supervising a doctoral student.
type Supervision struct {
	ResID           int64        `json:"res_id" gorm:"column:res_id;primaryKey;autoIncrement:false" validate:"required,gt=0"`
	DocID           int64        `json:"doc_id" gorm:"column:doc_id;primaryKey;autoIncrement:false" validate:"required,gt=0"`
	Theme           string       `json:"theme" gorm:"column:theme;size:300" validate:"omitempty,max=300"`
	StartDate       biztime.Date `json:"start_date" gorm:"column:start_date;not null" validate:"required"`
	SupervisionRole string       `json:"supervision_role" gorm:"column:supervision_role;size:20;not null" validate:"required,oneof=director co_director"`

	Researcher      *Researcher      `json:"researcher,omitempty" gorm:"foreignKey:ResID;references:ResID" validate:"-"`
	DoctoralStudent *DoctoralStudent `json:"doctoral_student,omitempty" gorm:"foreignKey:DocID;references:DocID" validate:"-"`
}

func (Supervision) TableName() string { return "supervisions" }

// Authorship links a researcher to a publication with their author rank.
type Authorship struct {
	ResID      int64  `json:"res_id" gorm:"column:res_id;primaryKey;autoIncrement:false" validate:"required,gt=0"`
	DOI        string `json:"doi" gorm:"column:doi;primaryKey;size:100" validate:"required,max=100"`
	AuthorRank int    `json:"author_rank" gorm:"column:author_rank;not null" validate:"required,gte=1"`

	Researcher  *Researcher  `json:"researcher,omitempty" gorm:"foreignKey:ResID;references:ResID" validate:"-"`
	Publication *Publication `json:"publication,omitempty" gorm:"foreignKey:DOI;references:DOI" validate:"-"`
}

func (Authorship) TableName() string { return "authorships" }
