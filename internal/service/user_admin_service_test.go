package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/mail"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userAdminFixture struct {
	svc   UserAdminService
	perms PermissionService
	db    *gorm.DB
	email *recordingEmail
	sink  *recordingSink
}

func newUserAdminFixture(t *testing.T) *userAdminFixture {
	t.Helper()
	db := newTestDB(t)
	setupRedis(t)
	userRepo := repository.NewUserRepo(db)
	perms := NewPermissionService(repository.NewPermissionRepo(db), userRepo)
	email := &recordingEmail{}
	auditLogger, sink := newAuditLogger()
	return &userAdminFixture{
		svc:   NewUserAdminService(userRepo, perms, email, auditLogger, 72*time.Hour),
		perms: perms,
		db:    db,
		email: email,
		sink:  sink,
	}
}

func boolPtr(b bool) *bool { return &b }

func TestCreateUserDefaultsToStaffWithEditorPermissions(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()

	user, err := f.svc.CreateUser(ctx, editor, &dto.UserCreateDTO{Username: "  writer ", Email: "w@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "writer", user.Username)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEmpty(t, user.Password)

	codenames, err := f.perms.Codenames(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, codenames, 12)
	assert.Contains(t, codenames, "delete_post")
	assert.Contains(t, codenames, "view_logentry")
	assert.NotContains(t, codenames, "view_user")

	require.Len(t, f.sink.messages, 1)
	assert.Contains(t, f.sink.messages[0], "[CREATED] CREATED | User")
}

func TestCreateNonStaffUserGetsNoPermissions(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()

	user, err := f.svc.CreateUser(ctx, editor, &dto.UserCreateDTO{Username: "reader", IsStaff: boolPtr(false)})
	require.NoError(t, err)
	codenames, err := f.perms.Codenames(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, codenames)
}

func TestCreateUserDuplicates(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()
	seedUser(t, f.db, &model.User{Username: "taken", Email: "taken@example.com", IsActive: true}, "")

	_, err := f.svc.CreateUser(ctx, editor, &dto.UserCreateDTO{Username: "taken"})
	assert.ErrorIs(t, err, ErrUsernameExist)

	_, err = f.svc.CreateUser(ctx, editor, &dto.UserCreateDTO{Username: "fresh", Email: "TAKEN@example.com"})
	assert.ErrorIs(t, err, ErrEmailExist)
}

func TestUpdateUserEmailResetsVerificationAndPromotionGrants(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()
	user := seedUser(t, f.db, &model.User{Username: "anna", Email: "a@example.com", IsActive: true, EmailVerified: true}, "")

	newEmail := "anna@example.com"
	updated, err := f.svc.UpdateUser(ctx, editor, user.ID, &dto.UserUpdateDTO{Email: &newEmail, IsStaff: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
	assert.False(t, updated.EmailVerified)
	assert.True(t, updated.IsStaff)

	codenames, err := f.perms.Codenames(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, codenames, 12)
}

func TestDeleteUser(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()
	root := seedUser(t, f.db, &model.User{Username: "root", IsActive: true, IsStaff: true, IsSuperuser: true}, "")
	user := seedUser(t, f.db, &model.User{Username: "anna", IsActive: true}, "")

	assert.ErrorIs(t, f.svc.DeleteUser(ctx, editor, root.ID), ErrSuperuserProtected)
	require.NoError(t, f.svc.DeleteUser(ctx, editor, user.ID))

	_, err := f.svc.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.Len(t, f.sink.messages, 1)
	assert.Contains(t, f.sink.messages[0], "[DELETED] DELETED | User")
}

func TestSendInvite(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()
	invitee := seedUser(t, f.db, &model.User{Username: "new", Email: "new@example.com", FirstName: "Nodira"}, "")
	noEmail := seedUser(t, f.db, &model.User{Username: "blank"}, "")
	active := seedUser(t, f.db, &model.User{Username: "done", Email: "done@example.com", IsActive: true}, "password1")

	assert.ErrorIs(t, f.svc.SendInvite(ctx, noEmail.ID), ErrEmailNotSet)
	assert.ErrorIs(t, f.svc.SendInvite(ctx, active.ID), ErrAlreadyActive)
	assert.ErrorIs(t, f.svc.SendInvite(ctx, 9999), ErrUserNotFound)

	require.NoError(t, f.svc.SendInvite(ctx, invitee.ID))
	task := f.email.last(t)
	assert.Equal(t, mail.TaskActivationInvite, task.Name)
	uid := strconv.FormatUint(invitee.ID, 10)
	assert.Equal(t, uid, task.Args["uid"])

	stored, err := redis.GetValue(ctx, consts.ActivationTokenKey+uid)
	require.NoError(t, err)
	assert.Equal(t, task.Args["token"], stored)
}

func TestCreateSuperuser(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()

	user, err := f.svc.CreateSuperuser(ctx, "admin", "admin@example.com", "password1")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsStaff)

	_, err = f.svc.CreateSuperuser(ctx, "admin", "", "password1")
	assert.ErrorIs(t, err, ErrUsernameExist)
	_, err = f.svc.CreateSuperuser(ctx, "", "", "password1")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGrantAllStaffAndAssignViewPerms(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()
	seedUser(t, f.db, &model.User{Username: "a", IsActive: true, IsStaff: true}, "")
	seedUser(t, f.db, &model.User{Username: "root", IsActive: true, IsStaff: true, IsSuperuser: true}, "")
	seedUser(t, f.db, &model.User{Username: "reader", IsActive: true}, "")

	views, err := f.perms.AssignViewPerms(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, PermissionGrant{Username: "a", Before: 0, After: 6, Granted: 6}, views[0])

	all, err := f.perms.GrantAllStaff(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, PermissionGrant{Username: "a", Before: 6, After: 12, Granted: 12}, all[0])

	// granting twice changes nothing
	again, err := f.perms.GrantAllStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), again[0].Before)
	assert.Equal(t, int64(12), again[0].After)
}

func TestHasPermission(t *testing.T) {
	f := newUserAdminFixture(t)
	ctx := context.Background()
	root := seedUser(t, f.db, &model.User{Username: "root", IsActive: true, IsSuperuser: true}, "")
	disabledRoot := seedUser(t, f.db, &model.User{Username: "old-root", IsSuperuser: true}, "")
	staff := seedUser(t, f.db, &model.User{Username: "staff", IsActive: true, IsStaff: true}, "")
	_, err := f.perms.GrantStaffDefaults(ctx, staff.ID)
	require.NoError(t, err)

	ok, err := f.perms.HasPermission(ctx, root, "delete_user")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.perms.HasPermission(ctx, disabledRoot, "view_post")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.perms.HasPermission(ctx, staff, "change_post")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.perms.HasPermission(ctx, staff, "delete_user")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.perms.HasPermission(ctx, nil, "view_post")
	require.NoError(t, err)
	assert.False(t, ok)
}
