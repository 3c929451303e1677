package i18n

var catalog = map[Lang]map[string]string{
	EN: {
		"validation_error":    "The submitted data is invalid",
		"invalid_query":       "The query parameters are invalid",
		"not_found":           "The requested resource was not found",
		"conflict":            "The operation conflicts with existing data",
		"unauthorized":        "Authentication is required",
		"forbidden":           "You are not allowed to perform this action",
		"export_failed":       "The export could not be generated",
		"too_many_requests":   "Too many requests, please try again later",
		"internal_error":      "An internal error occurred",
		"bad_request":         "The request is malformed",
		"invalid_credentials": "Invalid email or password",
		"session_expired":     "Your session has expired, please log in again",
		"logged_out":          "Logged out",

		"entity.faculty":          "Faculties",
		"entity.domain":           "Scientific domains",
		"entity.department":       "Departments",
		"entity.laboratory":       "Laboratories",
		"entity.team":             "Teams",
		"entity.researcher":       "Researchers",
		"entity.doctoral-student": "Doctoral students",
		"entity.equipment":        "Equipment",
		"entity.publication":      "Publications",
		"entity.communication":    "Communications",
		"entity.assignment":       "Equipment assignments",
		"entity.supervision":      "Thesis supervisions",
		"entity.authorship":       "Authorships",
		"entity.user":             "Users",
		"entity.role":             "Roles",
	},
	FR: {
		"validation_error":    "Les données soumises sont invalides",
		"invalid_query":       "Les paramètres de la requête sont invalides",
		"not_found":           "La ressource demandée est introuvable",
		"conflict":            "L'opération est en conflit avec des données existantes",
		"unauthorized":        "Une authentification est requise",
		"forbidden":           "Vous n'êtes pas autorisé à effectuer cette action",
		"export_failed":       "L'export n'a pas pu être généré",
		"too_many_requests":   "Trop de requêtes, veuillez réessayer plus tard",
		"internal_error":      "Une erreur interne est survenue",
		"bad_request":         "La requête est mal formée",
		"invalid_credentials": "Email ou mot de passe invalide",
		"session_expired":     "Votre session a expiré, veuillez vous reconnecter",
		"logged_out":          "Déconnecté",

		"entity.faculty":          "Facultés",
		"entity.domain":           "Domaines scientifiques",
		"entity.department":       "Départements",
		"entity.laboratory":       "Laboratoires",
		"entity.team":             "Équipes",
		"entity.researcher":       "Chercheurs",
		"entity.doctoral-student": "Doctorants",
		"entity.equipment":        "Équipements",
		"entity.publication":      "Publications",
		"entity.communication":    "Communications",
		"entity.assignment":       "Affectations d'équipement",
		"entity.supervision":      "Encadrements de thèse",
		"entity.authorship":       "Auteurs",
		"entity.user":             "Utilisateurs",
		"entity.role":             "Rôles",

		"column.faculty_id":        "Faculté",
		"column.faculty_name":      "Nom de la faculté",
		"column.domain_id":         "Domaine",
		"column.domain_name":       "Nom du domaine",
		"column.dept_id":           "Département",
		"column.dept_name":         "Nom du département",
		"column.lab_code":          "Code laboratoire",
		"column.lab_name":          "Nom du laboratoire",
		"column.team_id":           "Équipe",
		"column.team_name":         "Nom de l'équipe",
		"column.leader_id":         "Chef d'équipe",
		"column.res_id":            "Chercheur",
		"column.first_name":        "Prénom",
		"column.last_name":         "Nom",
		"column.email":             "Email",
		"column.phone":             "Téléphone",
		"column.gender":            "Sexe",
		"column.res_grade":         "Grade",
		"column.res_status":        "Statut",
		"column.doc_id":            "Doctorant",
		"column.registration_year": "Année d'inscription",
		"column.thesis_title":      "Intitulé de thèse",
		"column.inventory_num":     "N° d'inventaire",
		"column.equipment_name":    "Désignation",
		"column.category":          "Catégorie",
		"column.acquisition_date":  "Date d'acquisition",
		"column.state":             "État",
		"column.doi":               "DOI",
		"column.title":             "Titre",
		"column.journal":           "Revue",
		"column.pub_type":          "Type",
		"column.pub_year":          "Année",
		"column.com_id":            "Communication",
		"column.event_name":        "Événement",
		"column.location":          "Lieu",
		"column.com_date":          "Date",
		"column.assignment_date":   "Date d'affectation",
		"column.return_date":       "Date de retour",
		"column.theme":             "Thème",
		"column.start_date":        "Date de début",
		"column.supervision_role":  "Rôle",
		"column.author_rank":       "Rang d'auteur",
		"column.name":              "Nom",
		"column.description":       "Description",
		"column.role_id":           "Rôle",

		"column.faculty.faculty_name":       "Faculté",
		"column.domain.domain_name":         "Domaine",
		"column.department.dept_name":       "Département",
		"column.laboratory.lab_name":        "Laboratoire",
		"column.team.team_name":             "Équipe",
		"column.researcher.last_name":       "Chercheur",
		"column.doctoral_student.last_name": "Doctorant",
		"column.equipment.equipment_name":   "Équipement",
		"column.publication.title":          "Publication",
		"column.role.name":                  "Rôle",
	},
}

// T returns the message for key in lang, then in English, then fallback.
func T(lang Lang, key, fallback string) string {
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	if msg, ok := catalog[Default][key]; ok {
		return msg
	}
	return fallback
}

// Column returns the localized label of a column, falling back to the given label.
func Column(lang Lang, field, label string) string {
	return T(lang, "column."+field, label)
}
