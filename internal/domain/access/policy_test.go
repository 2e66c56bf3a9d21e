package access

import (
	"testing"

	"babyjournal/internal/domain/apperr"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Matrix(t *testing.T) {
	policy := NewPolicy()

	// ожидаемые роли для каждого действия
	matrix := map[Action][]Role{
		{ResourceJournal, OpRead}:     {RoleOwner, RoleEditor, RoleReader},
		{ResourceJournal, OpActivate}: {RoleOwner, RoleEditor, RoleReader},
		{ResourceJournal, OpUpdate}:   {RoleOwner, RoleEditor},
		{ResourceJournal, OpDelete}:   {RoleOwner},
		{ResourceShare, OpRead}:       {RoleOwner, RoleEditor},
		{ResourceShare, OpCreate}:     {RoleOwner},
		{ResourceShare, OpDelete}:     {RoleOwner},
		{ResourceEvent, OpRead}:       {RoleOwner, RoleEditor, RoleReader},
		{ResourceEvent, OpCreate}:     {RoleOwner, RoleEditor},
		{ResourceEvent, OpUpdate}:     {RoleOwner, RoleEditor},
		{ResourceEvent, OpDelete}:     {RoleOwner, RoleEditor},
		{ResourceMemory, OpRead}:      {RoleOwner, RoleEditor, RoleReader},
		{ResourceMemory, OpCreate}:    {RoleOwner, RoleEditor},
		{ResourceMemory, OpUpdate}:    {RoleOwner, RoleEditor},
		{ResourceMemory, OpDelete}:    {RoleOwner, RoleEditor},
		{ResourceBackup, OpExport}:    {RoleOwner},
	}

	for action, allowed := range matrix {
		for _, role := range []Role{RoleOwner, RoleEditor, RoleReader} {
			want := lo.Contains(allowed, role)
			err := policy.Authorize(Grant{JournalID: "j-1", UserID: 1, Role: role}, action)
			if want {
				assert.NoError(t, err, "%s should be allowed for %s", action, role)
			} else {
				assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err), "%s should be denied for %s", action, role)
			}
			assert.Equal(t, want, policy.Allows(role, action))
		}
	}
}

func TestPolicy_DeniesEmptyGrantAndUnknownAction(t *testing.T) {
	policy := NewPolicy()

	assert.ErrorIs(t, policy.Authorize(Grant{}, Action{ResourceEvent, OpRead}), ErrAccessDenied)
	assert.Equal(t, apperr.KindForbidden,
		apperr.KindOf(policy.Authorize(Grant{JournalID: "j-1", Role: RoleOwner}, Action{ResourceBackup, OpDelete})))
	assert.Equal(t, apperr.KindForbidden,
		apperr.KindOf(policy.Authorize(Grant{JournalID: "j-1", Role: Role("admin")}, Action{ResourceEvent, OpRead})))
}
