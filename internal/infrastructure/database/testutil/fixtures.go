package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labmanager/internal/domain/lab"
	"labmanager/internal/domain/user"
	"labmanager/internal/shared/biztime"
	"labmanager/internal/shared/constants"
)

// World is a small institution: two faculties with one laboratory each and a
// handful of records in both laboratories.
type World struct {
	Roles map[string]*user.Role

	FacultyA, FacultyB       *lab.Faculty
	Domain                   *lab.Domain
	DeptA, DeptB             *lab.Department
	LabA, LabB               *lab.Laboratory
	TeamA                    *lab.Team
	ResearcherA, ResearcherB *lab.Researcher
	StudentA                 *lab.DoctoralStudent
	EquipmentA, EquipmentB   *lab.Equipment
	PublicationA             *lab.Publication
	PublicationB             *lab.Publication
	AuthorshipA              *lab.Authorship
}

// SeedWorld inserts a World into gdb.
func SeedWorld(t *testing.T, gdb *gorm.DB) *World {
	t.Helper()

	w := &World{Roles: make(map[string]*user.Role)}
	create := func(v any) {
		t.Helper()
		require.NoError(t, gdb.Omit(clause.Associations).Create(v).Error)
	}

	for _, name := range constants.AllRoles {
		role := &user.Role{Name: name}
		create(role)
		w.Roles[name] = role
	}

	w.FacultyA = &lab.Faculty{FacultyName: "Faculty of Sciences"}
	w.FacultyB = &lab.Faculty{FacultyName: "Faculty of Medicine"}
	create(w.FacultyA)
	create(w.FacultyB)

	w.Domain = &lab.Domain{DomainName: "Computer Science"}
	create(w.Domain)

	w.DeptA = &lab.Department{DeptName: "Informatics", FacultyID: w.FacultyA.FacultyID}
	w.DeptB = &lab.Department{DeptName: "Biology", FacultyID: w.FacultyB.FacultyID}
	create(w.DeptA)
	create(w.DeptB)

	w.LabA = &lab.Laboratory{LabName: "Distributed Systems Lab", FacultyID: w.FacultyA.FacultyID, DomainID: w.Domain.DomainID, DeptID: w.DeptA.DeptID}
	w.LabB = &lab.Laboratory{LabName: "Genomics Lab", FacultyID: w.FacultyB.FacultyID, DomainID: w.Domain.DomainID, DeptID: w.DeptB.DeptID}
	create(w.LabA)
	create(w.LabB)

	w.TeamA = &lab.Team{TeamName: "Consensus", LabCode: w.LabA.LabCode}
	create(w.TeamA)

	w.ResearcherA = &lab.Researcher{
		FirstName: "Alice", LastName: "Martin", Email: "alice.martin@example.org",
		Gender: lab.GenderFemale, ResGrade: "Professor", ResStatus: lab.StatusActive,
		TeamID: &w.TeamA.TeamID, LabCode: w.LabA.LabCode,
	}
	w.ResearcherB = &lab.Researcher{
		FirstName: "Bruno", LastName: "Durand", Email: "bruno.durand@example.org",
		Gender: lab.GenderMale, ResGrade: "Lecturer", ResStatus: lab.StatusActive,
		LabCode: w.LabB.LabCode,
	}
	create(w.ResearcherA)
	create(w.ResearcherB)

	w.StudentA = &lab.DoctoralStudent{
		FirstName: "Chloe", LastName: "Bernard", Email: "chloe.bernard@example.org",
		Gender: lab.GenderFemale, RegistrationYear: 2024, ThesisTitle: "Byzantine agreement", LabCode: w.LabA.LabCode,
	}
	create(w.StudentA)

	w.EquipmentA = &lab.Equipment{
		InventoryNum: "INV-A-001", EquipmentName: "Oscilloscope", Category: "Measurement",
		AcquisitionDate: biztime.MustDate("2023-05-17"), State: lab.EquipmentAvailable, LabCode: w.LabA.LabCode,
	}
	w.EquipmentB = &lab.Equipment{
		InventoryNum: "INV-B-001", EquipmentName: "Sequencer", Category: "Lab equipment",
		State: lab.EquipmentAssigned, LabCode: w.LabB.LabCode,
	}
	create(w.EquipmentA)
	create(w.EquipmentB)

	w.PublicationA = &lab.Publication{DOI: "10.1000/dsl.2024.1", Title: "Fast consensus", Journal: "JPDC", PubType: "article", PubYear: 2024, LabCode: w.LabA.LabCode}
	w.PublicationB = &lab.Publication{DOI: "10.1000/gen.2023.7", Title: "Gene maps", Journal: "Nature", PubType: "article", PubYear: 2023, LabCode: w.LabB.LabCode}
	create(w.PublicationA)
	create(w.PublicationB)

	w.AuthorshipA = &lab.Authorship{ResID: w.ResearcherA.ResID, DOI: w.PublicationA.DOI, AuthorRank: 1}
	create(w.AuthorshipA)

	return w
}
