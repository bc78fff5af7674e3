package authz

import "testing"

func TestCanAdminActionsRequireSuperAdmin(t *testing.T) {
	adminActions := []string{ActionChangeRole, ActionResetPassword, ActionToggleActive, ActionReadAudit}
	for _, action := range adminActions {
		if !Can(RoleSuperAdmin, action) {
			t.Errorf("expected super_admin allowed for %s", action)
		}
		if Can(RoleClient, action) {
			t.Errorf("expected client denied for %s", action)
		}
		if Can(RoleCoach, action) {
			t.Errorf("expected coach denied for %s", action)
		}
	}
}

func TestCanClientLifecycleActions(t *testing.T) {
	if !Can(RoleClient, ActionMarkWorkoutDone) {
		t.Error("expected client allowed to mark workouts done")
	}
	if !Can(RoleClient, ActionSubmitFeedback) {
		t.Error("expected client allowed to submit feedback")
	}
	if Can(RoleClient, ActionAssignProgram) {
		t.Error("expected client denied assignment")
	}
	if !Can(RoleCoach, ActionAssignProgram) {
		t.Error("expected coach allowed assignment")
	}
}

func TestCanDeniesUnknownRoleAndAction(t *testing.T) {
	if Can("admin", ActionChangeRole) {
		t.Error("expected unknown role denied")
	}
	if Can(RoleSuperAdmin, "drop_tables") {
		t.Error("expected unknown action denied")
	}
	if Can("", ActionSubmitFeedback) {
		t.Error("expected empty role denied")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleClient, RoleCoach, RoleSuperAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected %s valid", role)
		}
	}
	for _, role := range []string{"", "user", "admin", "Super_Admin"} {
		if ValidRole(role) {
			t.Errorf("expected %q invalid", role)
		}
	}
}
