// Package authz holds the role set and the action policy table. Every mutating
// operation asks this table exactly once; handlers never compare role strings
// themselves.
package authz

const (
	RoleClient     = "client"
	RoleCoach      = "coach"
	RoleSuperAdmin = "super_admin"
)

const (
	ActionCreateProgram   = "create_program"
	ActionCreateWorkout   = "create_workout"
	ActionAssignProgram   = "assign_program"
	ActionMarkWorkoutDone = "mark_workout_done"
	ActionSubmitFeedback  = "submit_feedback"
	ActionChangeRole      = "change_role"
	ActionResetPassword   = "reset_password"
	ActionToggleActive    = "toggle_active"
	ActionReadAudit       = "read_audit"
)

var policy = map[string]map[string]struct{}{
	ActionCreateProgram:   {RoleCoach: {}},
	ActionCreateWorkout:   {RoleCoach: {}},
	ActionAssignProgram:   {RoleCoach: {}, RoleSuperAdmin: {}},
	ActionMarkWorkoutDone: {RoleClient: {}},
	ActionSubmitFeedback:  {RoleClient: {}},
	ActionChangeRole:      {RoleSuperAdmin: {}},
	ActionResetPassword:   {RoleSuperAdmin: {}},
	ActionToggleActive:    {RoleSuperAdmin: {}},
	ActionReadAudit:       {RoleSuperAdmin: {}},
}

// Can reports whether role may perform action. Unknown roles and unknown
// actions are both denied.
func Can(role, action string) bool {
	allowed, ok := policy[action]
	if !ok {
		return false
	}
	_, ok = allowed[role]
	return ok
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleCoach, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
