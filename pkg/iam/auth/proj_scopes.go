package auth

// ============================================================================
// DOMAIN ROLE GROUPS - ATS (Applicant Tracking System)
// ============================================================================

var (
	// Everyone is any authenticated account
	Everyone = []Role{RoleAdmin, RoleHR, RoleStaff}

	// Screeners move resumes through the pipeline and schedule interviews
	Screeners = []Role{RoleAdmin, RoleHR}

	// Admins only
	Admins = []Role{RoleAdmin}
)

// Resume operations
var (
	RolesResumeCreate    = Everyone
	RolesResumeList      = Everyone
	RolesResumeTransit   = Screeners
	RolesResumeFeedback  = Everyone
	RolesResumeHROwner   = Screeners
	RolesResumeInterview = Screeners
	RolesResumeEdit      = Admins
	RolesResumeDelete    = Admins
	RolesResumeDownload  = Everyone // staff further restricted to owned records
	RolesResumeExport    = Screeners
)

// Roster operations
var (
	RolesUserManage     = Admins
	RolesEmployeeList   = Screeners
	RolesEmployeeManage = Admins
	RolesLeadWrite      = Screeners
	RolesLeadDelete     = Admins
)

// HasRole reports whether role is one of allowed
func HasRole(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
