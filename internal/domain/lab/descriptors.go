package lab

import (
	"labmanager/internal/domain/resource"
	"labmanager/internal/shared/constants"
)

// Scope sub-queries. Each takes the laboratory or faculty key as its only parameter.
const (
	labsOfFaculty         = "SELECT lab_code FROM laboratories WHERE faculty_id = ?"
	researchersOfLab      = "SELECT res_id FROM researchers WHERE lab_code = ?"
	researchersOfFaculty  = "SELECT res_id FROM researchers WHERE lab_code IN (" + labsOfFaculty + ")"
	studentsOfLab         = "SELECT doc_id FROM doctoral_students WHERE lab_code = ?"
	studentsOfFaculty     = "SELECT doc_id FROM doctoral_students WHERE lab_code IN (" + labsOfFaculty + ")"
	equipmentOfLab        = "SELECT inventory_num FROM equipment WHERE lab_code = ?"
	equipmentOfFaculty    = "SELECT inventory_num FROM equipment WHERE lab_code IN (" + labsOfFaculty + ")"
	publicationsOfLab     = "SELECT doi FROM publications WHERE lab_code = ?"
	publicationsOfFaculty = "SELECT doi FROM publications WHERE lab_code IN (" + labsOfFaculty + ")"
)

func labScope() resource.Scope {
	return resource.Scope{Name: constants.ScopeLaboratory, Column: "lab_code", Kind: resource.KindInt}
}

func facultyViaLab() resource.Scope {
	return resource.Scope{Name: constants.ScopeFaculty, Column: "lab_code", Via: labsOfFaculty, Kind: resource.KindInt}
}

func restrict(table string, columns ...string) resource.Dependent {
	return resource.Dependent{Table: table, Columns: columns, Policy: resource.Restrict}
}

func FacultyDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:        "faculty",
		Table:       "faculties",
		Key:         []resource.KeyColumn{{Name: "faculty_id", Kind: resource.KindInt, Generated: true}},
		Searchable:  []string{"faculty_name"},
		Sortable:    []string{"faculty_id", "faculty_name"},
		DefaultSort: "faculty_id",
		Scopes: []resource.Scope{
			{Name: constants.ScopeFaculty, Column: "faculty_id", Kind: resource.KindInt},
		},
		Dependents: []resource.Dependent{
			restrict("departments", "faculty_id"),
			restrict("laboratories", "faculty_id"),
			restrict("users", "faculty_id"),
		},
		Columns: []resource.Column{
			{Field: "faculty_id", Label: "Faculty ID"},
			{Field: "faculty_name", Label: "Faculty name"},
		},
	}
}

func DomainDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:        "domain",
		Table:       "domains",
		Key:         []resource.KeyColumn{{Name: "domain_id", Kind: resource.KindInt, Generated: true}},
		Searchable:  []string{"domain_name"},
		Sortable:    []string{"domain_id", "domain_name"},
		DefaultSort: "domain_id",
		Dependents: []resource.Dependent{
			restrict("laboratories", "domain_id"),
		},
		Columns: []resource.Column{
			{Field: "domain_id", Label: "Domain ID"},
			{Field: "domain_name", Label: "Domain name"},
		},
	}
}

func DepartmentDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:        "department",
		Table:       "departments",
		Key:         []resource.KeyColumn{{Name: "dept_id", Kind: resource.KindInt, Generated: true}},
		Searchable:  []string{"dept_name"},
		Filters:     []resource.Field{{Name: "faculty_id", Kind: resource.KindInt}},
		Sortable:    []string{"dept_id", "dept_name", "faculty_id"},
		DefaultSort: "dept_id",
		Includes:    []string{"Faculty"},
		Scopes: []resource.Scope{
			{Name: constants.ScopeFaculty, Column: "faculty_id", Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeFaculty,
		Dependents: []resource.Dependent{
			restrict("laboratories", "dept_id"),
		},
		Columns: []resource.Column{
			{Field: "dept_id", Label: "Department ID"},
			{Field: "dept_name", Label: "Department name"},
			{Field: "faculty.faculty_name", Label: "Faculty"},
		},
	}
}

func LaboratoryDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "laboratory",
		Table:      "laboratories",
		Key:        []resource.KeyColumn{{Name: "lab_code", Kind: resource.KindInt, Generated: true}},
		Searchable: []string{"lab_name"},
		Filters: []resource.Field{
			{Name: "faculty_id", Kind: resource.KindInt},
			{Name: "domain_id", Kind: resource.KindInt},
			{Name: "dept_id", Kind: resource.KindInt},
		},
		Sortable:    []string{"lab_code", "lab_name", "faculty_id", "domain_id", "dept_id"},
		DefaultSort: "lab_code",
		Includes:    []string{"Faculty", "Domain", "Department"},
		Scopes: []resource.Scope{
			labScope(),
			{Name: constants.ScopeFaculty, Column: "faculty_id", Kind: resource.KindInt},
			{Name: constants.ScopeDomain, Column: "domain_id", Kind: resource.KindInt},
			{Name: constants.ScopeDepartment, Column: "dept_id", Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeFaculty,
		Dependents: []resource.Dependent{
			restrict("teams", "lab_code"),
			restrict("researchers", "lab_code"),
			restrict("doctoral_students", "lab_code"),
			restrict("equipment", "lab_code"),
			restrict("publications", "lab_code"),
			restrict("users", "lab_code"),
		},
		Columns: []resource.Column{
			{Field: "lab_code", Label: "Lab code"},
			{Field: "lab_name", Label: "Laboratory name"},
			{Field: "faculty.faculty_name", Label: "Faculty"},
			{Field: "domain.domain_name", Label: "Domain"},
			{Field: "department.dept_name", Label: "Department"},
		},
	}
}

func TeamDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "team",
		Table:      "teams",
		Key:        []resource.KeyColumn{{Name: "team_id", Kind: resource.KindInt, Generated: true}},
		Searchable: []string{"team_name"},
		Filters: []resource.Field{
			{Name: "lab_code", Kind: resource.KindInt},
			{Name: "leader_id", Kind: resource.KindInt},
		},
		Sortable:     []string{"team_id", "team_name", "lab_code"},
		DefaultSort:  "team_id",
		Includes:     []string{"Laboratory"},
		Scopes:       []resource.Scope{labScope(), facultyViaLab()},
		DefaultScope: constants.ScopeLaboratory,
		Dependents: []resource.Dependent{
			restrict("researchers", "team_id"),
		},
		Columns: []resource.Column{
			{Field: "team_id", Label: "Team ID"},
			{Field: "team_name", Label: "Team name"},
			{Field: "leader_id", Label: "Leader"},
			{Field: "laboratory.lab_name", Label: "Laboratory"},
		},
	}
}

func ResearcherDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "researcher",
		Table:      "researchers",
		Key:        []resource.KeyColumn{{Name: "res_id", Kind: resource.KindInt, Generated: true}},
		Searchable: []string{"first_name", "last_name", "email"},
		Filters: []resource.Field{
			{Name: "team_id", Kind: resource.KindInt},
			{Name: "lab_code", Kind: resource.KindInt},
			{Name: "gender", Kind: resource.KindString},
			{Name: "res_grade", Kind: resource.KindString},
			{Name: "res_status", Kind: resource.KindString},
		},
		Sortable:    []string{"res_id", "first_name", "last_name", "email", "res_grade", "res_status"},
		DefaultSort: "res_id",
		Includes:    []string{"Team", "Laboratory"},
		Scopes: []resource.Scope{
			labScope(),
			facultyViaLab(),
			{Name: constants.ScopeTeam, Column: "team_id", Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeLaboratory,
		Dependents: []resource.Dependent{
			restrict("teams", "leader_id"),
			restrict("communications", "res_id"),
			restrict("assignments", "res_id"),
			restrict("supervisions", "res_id"),
			restrict("authorships", "res_id"),
		},
		Columns: []resource.Column{
			{Field: "res_id", Label: "Researcher ID"},
			{Field: "last_name", Label: "Last name"},
			{Field: "first_name", Label: "First name"},
			{Field: "email", Label: "Email"},
			{Field: "phone", Label: "Phone"},
			{Field: "gender", Label: "Gender"},
			{Field: "res_grade", Label: "Grade"},
			{Field: "res_status", Label: "Status"},
			{Field: "team.team_name", Label: "Team"},
			{Field: "laboratory.lab_name", Label: "Laboratory"},
		},
	}
}

func DoctoralStudentDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "doctoral-student",
		Table:      "doctoral_students",
		Key:        []resource.KeyColumn{{Name: "doc_id", Kind: resource.KindInt, Generated: true}},
		Searchable: []string{"first_name", "last_name", "email", "thesis_title"},
		Filters: []resource.Field{
			{Name: "lab_code", Kind: resource.KindInt},
			{Name: "registration_year", Kind: resource.KindInt},
			{Name: "gender", Kind: resource.KindString},
		},
		Sortable:     []string{"doc_id", "first_name", "last_name", "registration_year"},
		DefaultSort:  "doc_id",
		Includes:     []string{"Laboratory"},
		Scopes:       []resource.Scope{labScope(), facultyViaLab()},
		DefaultScope: constants.ScopeLaboratory,
		Dependents: []resource.Dependent{
			restrict("supervisions", "doc_id"),
		},
		Columns: []resource.Column{
			{Field: "doc_id", Label: "Student ID"},
			{Field: "last_name", Label: "Last name"},
			{Field: "first_name", Label: "First name"},
			{Field: "email", Label: "Email"},
			{Field: "gender", Label: "Gender"},
			{Field: "registration_year", Label: "Registration year"},
			{Field: "thesis_title", Label: "Thesis title"},
			{Field: "laboratory.lab_name", Label: "Laboratory"},
		},
	}
}

func EquipmentDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "equipment",
		Table:      "equipment",
		Key:        []resource.KeyColumn{{Name: "inventory_num", Kind: resource.KindString}},
		Searchable: []string{"inventory_num", "equipment_name", "category"},
		Filters: []resource.Field{
			{Name: "lab_code", Kind: resource.KindInt},
			{Name: "state", Kind: resource.KindString},
			{Name: "category", Kind: resource.KindString},
		},
		Sortable:     []string{"inventory_num", "equipment_name", "category", "acquisition_date", "state"},
		DefaultSort:  "inventory_num",
		Includes:     []string{"Laboratory"},
		Scopes:       []resource.Scope{labScope(), facultyViaLab()},
		DefaultScope: constants.ScopeLaboratory,
		Dependents: []resource.Dependent{
			restrict("assignments", "inventory_num"),
		},
		Columns: []resource.Column{
			{Field: "inventory_num", Label: "Inventory number"},
			{Field: "equipment_name", Label: "Name"},
			{Field: "category", Label: "Category"},
			{Field: "acquisition_date", Label: "Acquisition date"},
			{Field: "state", Label: "State"},
			{Field: "laboratory.lab_name", Label: "Laboratory"},
		},
	}
}

func PublicationDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "publication",
		Table:      "publications",
		Key:        []resource.KeyColumn{{Name: "doi", Kind: resource.KindString}},
		Searchable: []string{"doi", "title", "journal"},
		Filters: []resource.Field{
			{Name: "lab_code", Kind: resource.KindInt},
			{Name: "pub_type", Kind: resource.KindString},
			{Name: "pub_year", Kind: resource.KindInt},
		},
		Sortable:     []string{"doi", "title", "journal", "pub_type", "pub_year"},
		DefaultSort:  "doi",
		Includes:     []string{"Laboratory"},
		Scopes:       []resource.Scope{labScope(), facultyViaLab()},
		DefaultScope: constants.ScopeLaboratory,
		Dependents: []resource.Dependent{
			// Author links have no meaning without their publication.
			{Table: "authorships", Columns: []string{"doi"}, Policy: resource.Cascade},
		},
		Columns: []resource.Column{
			{Field: "doi", Label: "DOI"},
			{Field: "title", Label: "Title"},
			{Field: "journal", Label: "Journal"},
			{Field: "pub_type", Label: "Type"},
			{Field: "pub_year", Label: "Year"},
			{Field: "laboratory.lab_name", Label: "Laboratory"},
		},
	}
}

func CommunicationDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:        "communication",
		Table:       "communications",
		Key:         []resource.KeyColumn{{Name: "com_id", Kind: resource.KindInt, Generated: true}},
		Searchable:  []string{"title", "event_name", "location"},
		Filters:     []resource.Field{{Name: "res_id", Kind: resource.KindInt}},
		Sortable:    []string{"com_id", "title", "event_name", "com_date"},
		DefaultSort: "com_id",
		Includes:    []string{"Researcher"},
		Scopes: []resource.Scope{
			{Name: constants.ScopeLaboratory, Column: "res_id", Via: researchersOfLab, Kind: resource.KindInt},
			{Name: constants.ScopeFaculty, Column: "res_id", Via: researchersOfFaculty, Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeLaboratory,
		Columns: []resource.Column{
			{Field: "com_id", Label: "Communication ID"},
			{Field: "title", Label: "Title"},
			{Field: "event_name", Label: "Event"},
			{Field: "location", Label: "Location"},
			{Field: "com_date", Label: "Date"},
			{Field: "researcher.last_name", Label: "Researcher"},
		},
	}
}

func AssignmentDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:  "assignment",
		Table: "assignments",
		Key: []resource.KeyColumn{
			{Name: "inventory_num", Kind: resource.KindString},
			{Name: "res_id", Kind: resource.KindInt},
		},
		Searchable: []string{"inventory_num"},
		Filters: []resource.Field{
			{Name: "inventory_num", Kind: resource.KindString},
			{Name: "res_id", Kind: resource.KindInt},
		},
		Sortable:    []string{"inventory_num", "res_id", "assignment_date", "return_date"},
		DefaultSort: "assignment_date",
		Includes:    []string{"Equipment", "Researcher"},
		Scopes: []resource.Scope{
			{Name: constants.ScopeLaboratory, Column: "inventory_num", Via: equipmentOfLab, Kind: resource.KindInt},
			{Name: constants.ScopeFaculty, Column: "inventory_num", Via: equipmentOfFaculty, Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeLaboratory,
		Columns: []resource.Column{
			{Field: "inventory_num", Label: "Inventory number"},
			{Field: "equipment.equipment_name", Label: "Equipment"},
			{Field: "res_id", Label: "Researcher ID"},
			{Field: "researcher.last_name", Label: "Researcher"},
			{Field: "assignment_date", Label: "Assignment date"},
			{Field: "return_date", Label: "Return date"},
		},
	}
}

func SupervisionDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:  "supervision",
		Table: "supervisions",
		Key: []resource.KeyColumn{
			{Name: "res_id", Kind: resource.KindInt},
			{Name: "doc_id", Kind: resource.KindInt},
		},
		Searchable: []string{"theme"},
		Filters: []resource.Field{
			{Name: "res_id", Kind: resource.KindInt},
			{Name: "doc_id", Kind: resource.KindInt},
			{Name: "supervision_role", Kind: resource.KindString},
		},
		Sortable:    []string{"res_id", "doc_id", "start_date", "supervision_role"},
		DefaultSort: "start_date",
		Includes:    []string{"Researcher", "DoctoralStudent"},
		Scopes: []resource.Scope{
			{Name: constants.ScopeLaboratory, Column: "doc_id", Via: studentsOfLab, Kind: resource.KindInt},
			{Name: constants.ScopeFaculty, Column: "doc_id", Via: studentsOfFaculty, Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeLaboratory,
		Columns: []resource.Column{
			{Field: "researcher.last_name", Label: "Supervisor"},
			{Field: "doctoral_student.last_name", Label: "Doctoral student"},
			{Field: "theme", Label: "Theme"},
			{Field: "start_date", Label: "Start date"},
			{Field: "supervision_role", Label: "Role"},
		},
	}
}

func AuthorshipDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:  "authorship",
		Table: "authorships",
		Key: []resource.KeyColumn{
			{Name: "res_id", Kind: resource.KindInt},
			{Name: "doi", Kind: resource.KindString},
		},
		Searchable: []string{"doi"},
		Filters: []resource.Field{
			{Name: "res_id", Kind: resource.KindInt},
			{Name: "doi", Kind: resource.KindString},
		},
		Sortable:    []string{"res_id", "doi", "author_rank"},
		DefaultSort: "doi",
		Includes:    []string{"Researcher", "Publication"},
		Scopes: []resource.Scope{
			{Name: constants.ScopeLaboratory, Column: "doi", Via: publicationsOfLab, Kind: resource.KindInt},
			{Name: constants.ScopeFaculty, Column: "doi", Via: publicationsOfFaculty, Kind: resource.KindInt},
		},
		DefaultScope: constants.ScopeLaboratory,
		Columns: []resource.Column{
			{Field: "doi", Label: "DOI"},
			{Field: "publication.title", Label: "Publication"},
			{Field: "researcher.last_name", Label: "Researcher"},
			{Field: "author_rank", Label: "Author rank"},
		},
	}
}
