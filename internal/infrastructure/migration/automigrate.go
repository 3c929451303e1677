package migration

import (
	"labmanager/internal/domain/lab"
	"labmanager/internal/domain/user"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&user.Role{},
		&lab.Faculty{},
		&lab.Domain{},
		&lab.Department{},
		&lab.Laboratory{},
		&user.User{},
		&user.Session{},
		&lab.Team{},
		&lab.Researcher{},
		&lab.DoctoralStudent{},
		&lab.Equipment{},
		&lab.Publication{},
		&lab.Communication{},
		&lab.Assignment{},
		&lab.Supervision{},
		&lab.Authorship{},
	}
}
