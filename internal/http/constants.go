package httpx

// Fixed route paths shared by handlers, middleware and templates.
const (
	LoginPath     = "/login"
	LogoutPath    = "/logout"
	RegisterPath  = "/register"
	VerifyPath    = "/verify"
	ForbiddenPath = "/unauthorized"
	SignedOutPath = "/auth/signed-out"
	HomePath      = "/analytics"
	ProfilePath   = "/profile"
)

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageLogin        = "login"
	PageRegister     = "register"
	PageVerify       = "verify"
	PageUnauthorized = "unauthorized"
	PageSignedOut    = "signed-out"
	PageAnalytics    = "analytics"
	PageProfile      = "profile"
	PageModuleList   = "module-list"
	PageModuleRecord = "module-record"
	PageError        = "error"
	PageNotFound     = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageLogin:        "login-content",
	PageRegister:     "register-content",
	PageVerify:       "verify-content",
	PageUnauthorized: "unauthorized-content",
	PageSignedOut:    "signed-out-content",
	PageAnalytics:    "analytics-content",
	PageProfile:      "profile-content",
	PageModuleList:   "module-list-content",
	PageModuleRecord: "module-record-content",
	PageError:        "error-content",
	PageNotFound:     "not-found-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to error-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "error-content"
}
