package http

import (
	"gorm.io/gorm"

	"labmanager/internal/application/crud"
	appUser "labmanager/internal/application/user"
	"labmanager/internal/domain/lab"
	"labmanager/internal/domain/resource"
	"labmanager/internal/domain/user"
	"labmanager/internal/infrastructure/export"
	"labmanager/internal/infrastructure/repository"
	"labmanager/internal/shared/db"
	"labmanager/internal/shared/logger"
)

// accessRoutes are the entities only administrators manage.
var accessRoutes = map[string]bool{"user": true, "role": true}

func newController[T any](gdb *gorm.DB, desc *resource.Descriptor, renderer crud.Renderer, log logger.Interface, opts ...crud.Option[T]) crud.Controller {
	return crud.NewService[T](
		desc,
		repository.NewResourceRepository[T](gdb, desc, log),
		db.NewTransactionManager(gdb),
		renderer,
		log,
		opts...,
	)
}

// newResourceRegistry registers every entity exposed through the generic
// controller. Registration order is the order of GET /meta.
func newResourceRegistry(gdb *gorm.DB, hasher user.PasswordHasher, sessions user.SessionStore, log logger.Interface) *crud.Registry {
	log = log.Named("resource")
	renderer := export.NewXLSXGenerator(log)
	hooks := appUser.NewAccountHooks(hasher, sessions, log)

	registry := crud.NewRegistry()
	registry.MustRegister(
		newController[lab.Faculty](gdb, lab.FacultyDescriptor(), renderer, log),
		newController[lab.Domain](gdb, lab.DomainDescriptor(), renderer, log),
		newController[lab.Department](gdb, lab.DepartmentDescriptor(), renderer, log),
		newController[lab.Laboratory](gdb, lab.LaboratoryDescriptor(), renderer, log),
		newController[lab.Team](gdb, lab.TeamDescriptor(), renderer, log),
		newController[lab.Researcher](gdb, lab.ResearcherDescriptor(), renderer, log),
		newController[lab.DoctoralStudent](gdb, lab.DoctoralStudentDescriptor(), renderer, log),
		newController[lab.Equipment](gdb, lab.EquipmentDescriptor(), renderer, log),
		newController[lab.Publication](gdb, lab.PublicationDescriptor(), renderer, log),
		newController[lab.Communication](gdb, lab.CommunicationDescriptor(), renderer, log),
		newController[lab.Assignment](gdb, lab.AssignmentDescriptor(), renderer, log),
		newController[lab.Supervision](gdb, lab.SupervisionDescriptor(), renderer, log),
		newController[lab.Authorship](gdb, lab.AuthorshipDescriptor(), renderer, log),
		newController[user.User](gdb, user.UserDescriptor(), renderer, log,
			crud.WithBeforeSave[user.User](hooks.BeforeSave),
			crud.WithAfterDelete[user.User](hooks.AfterDelete),
		),
		newController[user.Role](gdb, user.RoleDescriptor(), renderer, log),
	)
	return registry
}

// domainRoutes lists the registered research entities, leaving out the
// admin-only account routes.
func domainRoutes(registry *crud.Registry) []string {
	var out []string
	for _, name := range registry.Names() {
		if !accessRoutes[name] {
			out = append(out, name)
		}
	}
	return out
}
