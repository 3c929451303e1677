package lab

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

const (
	StatusActive   = "active"
	StatusOnLeave  = "on_leave"
	StatusRetired  = "retired"
	StatusDeparted = "departed"
)

// Researcher is a permanent member of a laboratory, optionally in a team.
type Researcher struct {
	ResID     int64  `json:"res_id" gorm:"column:res_id;primaryKey;autoIncrement"`
	FirstName string `json:"first_name" gorm:"column:first_name;size:100;not null" validate:"required,max=100"`
	LastName  string `json:"last_name" gorm:"column:last_name;size:100;not null" validate:"required,max=100"`
	Email     string `json:"email" gorm:"column:email;size:255;not null;uniqueIndex" validate:"required,email,max=255"`
	Phone     string `json:"phone" gorm:"column:phone;size:30" validate:"omitempty,max=30"`
	Gender    string `json:"gender" gorm:"column:gender;size:1;not null" validate:"required,oneof=M F"`
	ResGrade  string `json:"res_grade" gorm:"column:res_grade;size:50" validate:"omitempty,max=50"`
	ResStatus string `json:"res_status" gorm:"column:res_status;size:20;not null" validate:"required,oneof=active on_leave retired departed"`
	TeamID    *int64 `json:"team_id" gorm:"column:team_id;index" validate:"omitempty,gt=0"`
	LabCode   int64  `json:"lab_code" gorm:"column:lab_code;not null;index" validate:"required,gt=0"`

	Team       *Team       `json:"team,omitempty" gorm:"foreignKey:TeamID;references:TeamID" validate:"-"`
	Laboratory *Laboratory `json:"laboratory,omitempty" gorm:"foreignKey:LabCode;references:LabCode" validate:"-"`
}

func (Researcher) TableName() string { return "researchers" }

// DoctoralStudent is a PhD candidate registered in a laboratory.
type DoctoralStudent struct {
	DocID            int64  `json:"doc_id" gorm:"column:doc_id;primaryKey;autoIncrement"`
	FirstName        string `json:"first_name" gorm:"column:first_name;size:100;not null" validate:"required,max=100"`
	LastName         string `json:"last_name" gorm:"column:last_name;size:100;not null" validate:"required,max=100"`
	Email            string `json:"email" gorm:"column:email;size:255;not null;uniqueIndex" validate:"required,email,max=255"`
	Gender           string `json:"gender" gorm:"column:gender;size:1;not null" validate:"required,oneof=M F"`
	RegistrationYear int    `json:"registration_year" gorm:"column:registration_year;not null" validate:"required,gte=1950,lte=2100"`
	ThesisTitle      string `json:"thesis_title" gorm:"column:thesis_title;size:300" validate:"omitempty,max=300"`
	LabCode          int64  `json:"lab_code" gorm:"column:lab_code;not null;index" validate:"required,gt=0"`

	Laboratory *Laboratory `json:"laboratory,omitempty" gorm:"foreignKey:LabCode;references:LabCode" validate:"-"`
}

func (DoctoralStudent) TableName() string { return "doctoral_students" }
