package user

import "labmanager/internal/domain/resource"

func UserDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:       "user",
		Table:      "users",
		Key:        []resource.KeyColumn{{Name: "id", Kind: resource.KindInt, Generated: true}},
		Searchable: []string{"email", "first_name", "last_name"},
		Filters: []resource.Field{
			{Name: "role_id", Kind: resource.KindInt},
			{Name: "lab_code", Kind: resource.KindInt},
			{Name: "faculty_id", Kind: resource.KindInt},
		},
		Sortable:    []string{"id", "email", "first_name", "last_name", "role_id", "created_at"},
		DefaultSort: "id",
		Includes:    []string{"Role"},
		Columns: []resource.Column{
			{Field: "id", Label: "User ID"},
			{Field: "email", Label: "Email"},
			{Field: "last_name", Label: "Last name"},
			{Field: "first_name", Label: "First name"},
			{Field: "role.name", Label: "Role"},
			{Field: "lab_code", Label: "Lab code"},
			{Field: "faculty_id", Label: "Faculty"},
		},
	}
}

func RoleDescriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Name:        "role",
		Table:       "roles",
		Key:         []resource.KeyColumn{{Name: "id", Kind: resource.KindInt, Generated: true}},
		Searchable:  []string{"name", "description"},
		Sortable:    []string{"id", "name"},
		DefaultSort: "id",
		Dependents: []resource.Dependent{
			{Table: "users", Columns: []string{"role_id"}, Policy: resource.Restrict},
		},
		Columns: []resource.Column{
			{Field: "id", Label: "Role ID"},
			{Field: "name", Label: "Name"},
			{Field: "description", Label: "Description"},
		},
	}
}
