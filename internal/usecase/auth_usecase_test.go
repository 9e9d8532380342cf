package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younes-radi/order-app/internal/domain"
)

type authFixture struct {
	users    *fakeUserRepo
	roles    *fakeRoleRepo
	sessions *SessionRegistry
	orderFx  *orderFixture
	uc       domain.AuthUseCase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	sessions := NewSessionRegistry()
	orderFx := newOrderFixture(t)

	adminRole, err := roles.CreateRole(&domain.Role{Name: domain.RoleAdmin, Description: "Full access to all features"})
	require.NoError(t, err)
	cashierRole, err := roles.CreateRole(&domain.Role{Name: domain.RoleCashier, Description: "Can process orders and payments"})
	require.NoError(t, err)

	admin := &domain.User{Username: "admin", FullName: "Administrator", RoleID: adminRole.ID}
	require.NoError(t, admin.SetPassword("admin123"))
	_, err = users.CreateUser(admin)
	require.NoError(t, err)

	cashier := &domain.User{Username: "cashier", FullName: "Store Cashier", RoleID: cashierRole.ID}
	require.NoError(t, cashier.SetPassword("cashier123"))
	_, err = users.CreateUser(cashier)
	require.NoError(t, err)

	return &authFixture{
		users:    users,
		roles:    roles,
		sessions: sessions,
		orderFx:  orderFx,
		uc:       NewAuthUseCase(users, roles, sessions, orderFx.uc, testLogger()),
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	fx := newAuthFixture(t)

	sess, user, err := fx.uc.Login("cashier", "cashier123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "cashier", user.Username)

	registered, ok := fx.sessions.Get(sess.Token)
	require.True(t, ok)
	assert.Equal(t, sess, registered)
}

func TestAuthUseCase_Login_WrongPassword(t *testing.T) {
	fx := newAuthFixture(t)

	_, _, err := fx.uc.Login("cashier", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthUseCase_Login_UniformFailureMessage(t *testing.T) {
	fx := newAuthFixture(t)

	_, _, wrongPassword := fx.uc.Login("cashier", "wrong")
	require.Error(t, wrongPassword)
	_, _, unknownUser := fx.uc.Login("nobody", "wrong")
	require.Error(t, unknownUser)

	// Unknown usernames and wrong passwords must be indistinguishable.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthUseCase_Login_EmptyCredentials(t *testing.T) {
	fx := newAuthFixture(t)

	_, _, err := fx.uc.Login("", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthUseCase_Logout(t *testing.T) {
	fx := newAuthFixture(t)
	sess, _, err := fx.uc.Login("cashier", "cashier123")
	require.NoError(t, err)

	require.NoError(t, fx.uc.Logout(sess))

	_, ok := fx.sessions.Get(sess.Token)
	assert.False(t, ok)
}

func TestAuthUseCase_Logout_CancelsOpenOrder(t *testing.T) {
	fx := newAuthFixture(t)
	sess, _, err := fx.uc.Login("cashier", "cashier123")
	require.NoError(t, err)

	order, err := fx.orderFx.uc.CreateOrder(sess, 1)
	require.NoError(t, err)
	_, err = fx.orderFx.uc.AddOrderItem(sess, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 8, fx.orderFx.products.stock(1))

	require.NoError(t, fx.uc.Logout(sess))

	// Reserved stock goes back and the abandoned order is cancelled.
	assert.Equal(t, 10, fx.orderFx.products.stock(1))
	stored, err := fx.orderFx.orders.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	_, ok := fx.sessions.Get(sess.Token)
	assert.False(t, ok)
}

func TestAuthUseCase_IsAdmin(t *testing.T) {
	fx := newAuthFixture(t)

	adminSess, _, err := fx.uc.Login("admin", "admin123")
	require.NoError(t, err)
	cashierSess, _, err := fx.uc.Login("cashier", "cashier123")
	require.NoError(t, err)

	assert.True(t, fx.uc.IsAdmin(adminSess))
	assert.False(t, fx.uc.IsAdmin(cashierSess))
	assert.False(t, fx.uc.IsAdmin(&domain.Session{Token: "ghost", UserID: 99}))
}

func TestAuthUseCase_RegisterUser(t *testing.T) {
	fx := newAuthFixture(t)

	created, err := fx.uc.RegisterUser("newcashier", "secret123", "New Cashier", "new@example.com", "")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// An empty role name falls back to the cashier role.
	role, err := fx.roles.GetRoleByID(created.RoleID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCashier, role.Name)

	stored, err := fx.users.GetUserByUsername("newcashier")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, stored.CheckPassword("secret123"))
}

func TestAuthUseCase_RegisterUser_AdminRole(t *testing.T) {
	fx := newAuthFixture(t)

	created, err := fx.uc.RegisterUser("boss", "secret123", "The Boss", "", domain.RoleAdmin)
	require.NoError(t, err)

	sess := fx.sessions.Create(created.ID)
	assert.True(t, fx.uc.IsAdmin(sess))
}

func TestAuthUseCase_RegisterUser_UnknownRole(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.uc.RegisterUser("someone", "secret123", "", "", "Janitor")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthUseCase_RegisterUser_MissingCredentials(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.uc.RegisterUser("", "secret123", "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.RegisterUser("someone", "", "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthUseCase_RegisterUser_DuplicateUsername(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.uc.RegisterUser("cashier", "secret123", "", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthUseCase_ListUsersAndRoles(t *testing.T) {
	fx := newAuthFixture(t)

	users, err := fx.uc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	roles, err := fx.uc.ListRoles()
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}
