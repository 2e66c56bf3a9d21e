package access

import (
	"fmt"

	"babyjournal/internal/domain/apperr"

	"github.com/mikespook/gorbac/v2"
)

type Resource string

const (
	ResourceJournal Resource = "journal"
	ResourceShare   Resource = "share"
	ResourceEvent   Resource = "event"
	ResourceMemory  Resource = "memory"
	ResourceBackup  Resource = "backup"
)

type Operation string

const (
	OpRead     Operation = "read"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpActivate Operation = "activate"
	OpExport   Operation = "export"
)

type Action struct {
	Resource  Resource
	Operation Operation
}

func (a Action) String() string {
	return fmt.Sprintf("%s:%s", a.Resource, a.Operation)
}

// уровни доступа; роли наследуют их снизу вверх: reader < editor < owner
const (
	permView = "view"
	permEdit = "edit"
	permOwn  = "own"
)

// policyTable - минимальный уровень для каждой пары (ресурс, операция)
var policyTable = map[Action]string{
	{ResourceJournal, OpRead}:     permView,
	{ResourceJournal, OpActivate}: permView,
	{ResourceJournal, OpUpdate}:   permEdit,
	{ResourceJournal, OpDelete}:   permOwn,

	{ResourceShare, OpRead}:   permEdit,
	{ResourceShare, OpCreate}: permOwn,
	{ResourceShare, OpDelete}: permOwn,

	{ResourceEvent, OpRead}:   permView,
	{ResourceEvent, OpCreate}: permEdit,
	{ResourceEvent, OpUpdate}: permEdit,
	{ResourceEvent, OpDelete}: permEdit,

	{ResourceMemory, OpRead}:   permView,
	{ResourceMemory, OpCreate}: permEdit,
	{ResourceMemory, OpUpdate}: permEdit,
	{ResourceMemory, OpDelete}: permEdit,

	{ResourceBackup, OpExport}: permOwn,
}

// Authorizer проверяет grant перед операцией над ресурсом журнала
type Authorizer interface {
	Authorize(g Grant, action Action) error
}

// Policy - единая точка проверки роли перед операцией
type Policy struct {
	rbac *gorbac.RBAC
}

func NewPolicy() *Policy {
	rbac := gorbac.New()

	reader := gorbac.NewStdRole(string(RoleReader))
	reader.Assign(gorbac.NewStdPermission(permView))

	editor := gorbac.NewStdRole(string(RoleEditor))
	editor.Assign(gorbac.NewStdPermission(permEdit))

	owner := gorbac.NewStdRole(string(RoleOwner))
	owner.Assign(gorbac.NewStdPermission(permOwn))

	rbac.Add(reader)
	rbac.Add(editor)
	rbac.Add(owner)

	// editor наследует права reader, owner - права editor
	rbac.SetParent(string(RoleEditor), string(RoleReader))
	rbac.SetParent(string(RoleOwner), string(RoleEditor))

	return &Policy{rbac: rbac}
}

// Authorize проверяет, что роль из grant достаточна для action.
// Неизвестное действие запрещено.
func (p *Policy) Authorize(g Grant, action Action) error {
	if g.JournalID == "" || g.Role == "" {
		return ErrAccessDenied
	}

	perm, ok := policyTable[action]
	if !ok {
		return apperr.Forbidden(fmt.Sprintf("action %s is not allowed", action))
	}

	if !p.rbac.IsGranted(string(g.Role), gorbac.NewStdPermission(perm), nil) {
		return ErrAccessDenied
	}
	return nil
}

// Allows - то же, что Authorize, но без ошибки
func (p *Policy) Allows(role Role, action Action) bool {
	return p.Authorize(Grant{JournalID: "-", Role: role}, action) == nil
}
