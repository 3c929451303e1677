package lab

import "labmanager/internal/shared/biztime"

const (
	EquipmentAvailable = "available"
	EquipmentAssigned  = "assigned"
	EquipmentBroken    = "broken"
)

// Equipment is an inventoried asset owned by a laboratory.
type Equipment struct {
	InventoryNum    string       `json:"inventory_num" gorm:"column:inventory_num;primaryKey;size:50" validate:"required,max=50"`
	EquipmentName   string       `json:"equipment_name" gorm:"column:equipment_name;size:200;not null" validate:"required,max=200"`
	Category        string       `json:"category" gorm:"column:category;size:100" validate:"omitempty,max=100"`
	AcquisitionDate biztime.Date `json:"acquisition_date" gorm:"column:acquisition_date"`
	State           string       `json:"state" gorm:"column:state;size:20;not null" validate:"required,oneof=available assigned broken"`
	LabCode         int64        `json:"lab_code" gorm:"column:lab_code;not null;index" validate:"required,gt=0"`

	Laboratory *Laboratory `json:"laboratory,omitempty" gorm:"foreignKey:LabCode;references:LabCode" validate:"-"`
}

func (Equipment) TableName() string { return "equipment" }

// Publication is keyed by its DOI.
type Publication struct {
	DOI     string `json:"doi" gorm:"column:doi;primaryKey;size:100" validate:"required,max=100"`
	Title   string `json:"title" gorm:"column:title;size:300;not null" validate:"required,max=300"`
	Journal string `json:"journal" gorm:"column:journal;size:200" validate:"omitempty,max=200"`
	PubType string `json:"pub_type" gorm:"column:pub_type;size:20;not null" validate:"required,oneof=article conference book chapter"`
	PubYear int    `json:"pub_year" gorm:"column:pub_year;not null" validate:"required,gte=1900,lte=2100"`
	LabCode int64  `json:"lab_code" gorm:"column:lab_code;not null;index" validate:"required,gt=0"`

	Laboratory *Laboratory `json:"laboratory,omitempty" gorm:"foreignKey:LabCode;references:LabCode" validate:"-"`
}

func (Publication) TableName() string { return "publications" }

// Communication is a talk or poster given by a researcher at an event.
type Communication struct {
	ComID     int64        `json:"com_id" gorm:"column:com_id;primaryKey;autoIncrement"`
	Title     string       `json:"title" gorm:"column:title;size:300;not null" validate:"required,max=300"`
	EventName string       `json:"event_name" gorm:"column:event_name;size:200;not null" validate:"required,max=200"`
	Location  string       `json:"location" gorm:"column:location;size:200" validate:"omitempty,max=200"`
	ComDate   biztime.Date `json:"com_date" gorm:"column:com_date;not null" validate:"required"`
	ResID     int64        `json:"res_id" gorm:"column:res_id;not null;index" validate:"required,gt=0"`

	Researcher *Researcher `json:"researcher,omitempty" gorm:"foreignKey:ResID;references:ResID" validate:"-"`
}

func (Communication) TableName() string { return "communications" }
