package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxRequestBodyBytes caps resource payloads.
	MaxRequestBodyBytes = 1 << 20

	// HTTP Headers
	HeaderXRequestID       = "X-Request-ID"
	HeaderAcceptLanguage   = "Accept-Language"
	ContentTypeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SpreadsheetExtension   = ".xlsx"

	// Context keys
	ContextKeyUser      = "current_user"
	ContextKeySession   = "current_session"
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
	ContextKeyLang      = "lang"

	// Role names
	RoleAdmin      = "admin"
	RoleRector     = "rector"
	RoleLabManager = "lab_manager"
	RoleResearcher = "researcher"

	// Scope names shared by resource descriptors
	ScopeLaboratory = "laboratory"
	ScopeFaculty    = "faculty"
	ScopeDepartment = "department"
	ScopeDomain     = "domain"
	ScopeTeam       = "team"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)

// AllRoles lists the seeded roles in privilege order.
var AllRoles = []string{RoleAdmin, RoleRector, RoleLabManager, RoleResearcher}
