package domain

// Role is one of a small closed set of back-office roles. Permission sets and
// levels are static configuration baked in at compile time; users only carry
// a role assignment.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleContentManager  Role = "content_manager"
	RoleContentReviewer Role = "content_reviewer"
	RoleUser            Role = "user"
)

// Permission names an admin action. Typed constants keep permission typos
// from compiling.
type Permission string

const (
	PermManageEvents        Permission = "manage:events"
	PermManageRegistrations Permission = "manage:registrations"
	PermManageTeachers      Permission = "manage:teachers"
	PermManageVolunteers    Permission = "manage:volunteers"
	PermCreateContent       Permission = "create:content"
	PermReviewContent       Permission = "review:content"
	PermPublishContent      Permission = "publish:content"
	PermManageResources     Permission = "manage:resources"
	PermReadMessage         Permission = "read:message"
	PermReplyMessage        Permission = "reply:message"
	PermDeleteMessage       Permission = "delete:message"
	PermManageSubscribers   Permission = "manage:subscribers"
	PermViewAnalytics       Permission = "view:analytics"
	PermManageUsers         Permission = "manage:users"
)

// roleLevels orders roles; a higher level may do anything a lower one can
// where level gating is used.
var roleLevels = map[Role]int{
	RoleUser:            1,
	RoleContentReviewer: 2,
	RoleContentManager:  3,
	RoleAdmin:           4,
}

// rolePermissions is the closed permission table. Admin holds every
// permission; the content roles cover the moderation pipeline plus the
// surfaces they deal with day to day.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: permSet(
		PermManageEvents, PermManageRegistrations, PermManageTeachers,
		PermManageVolunteers, PermCreateContent, PermReviewContent,
		PermPublishContent, PermManageResources, PermReadMessage,
		PermReplyMessage, PermDeleteMessage, PermManageSubscribers,
		PermViewAnalytics, PermManageUsers,
	),
	RoleContentManager: permSet(
		PermCreateContent, PermReviewContent, PermPublishContent,
		PermManageResources, PermReadMessage, PermReplyMessage,
		PermViewAnalytics,
	),
	RoleContentReviewer: permSet(
		PermCreateContent, PermReviewContent, PermReadMessage,
	),
	RoleUser: {},
}

func permSet(perms ...Permission) map[Permission]bool {
	s := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		s[p] = true
	}
	return s
}

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the role's ordering level, or 0 for unknown roles.
func Level(r Role) int {
	return roleLevels[r]
}

// HasPermission reports whether the role's fixed permission set contains perm.
// Pure table lookup; unknown roles have no permissions.
func HasPermission(r Role, perm Permission) bool {
	return rolePermissions[r][perm]
}

// HasRoleLevel reports whether the role's level is at least required.
func HasRoleLevel(r Role, required int) bool {
	return roleLevels[r] >= required
}
