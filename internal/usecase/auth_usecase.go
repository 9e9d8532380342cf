package usecase

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
)

var _ domain.AuthUseCase = (*authUseCase)(nil)

type authUseCase struct {
	userRepo domain.UserRepository
	roleRepo domain.RoleRepository
	sessions *SessionRegistry
	orderUC  domain.OrderUseCase
	log      *logrus.Logger
}

func NewAuthUseCase(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	sessions *SessionRegistry,
	orderUC domain.OrderUseCase,
	logger *logrus.Logger,
) domain.AuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		sessions: sessions,
		orderUC:  orderUC,
		log:      logger,
	}
}

// Login reports the same error for an unknown username and a wrong
// password, so callers cannot probe which usernames exist.
func (uc *authUseCase) Login(username, password string) (*domain.Session, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Login failed for unknown username %s", username)
			return nil, nil, fmt.Errorf("%w: invalid username or password", domain.ErrInvalidInput)
		}
		return nil, nil, err
	}

	if !user.CheckPassword(password) {
		uc.log.Warnf("Use Case: Login failed for user %s: wrong password", username)
		return nil, nil, fmt.Errorf("%w: invalid username or password", domain.ErrInvalidInput)
	}

	sess := uc.sessions.Create(user.ID)
	uc.log.Infof("Use Case: User %s (ID: %d) logged in", user.Username, user.ID)
	return sess, user, nil
}

// Logout cancels any order the session is still building before dropping
// the session, returning its reserved stock. A failed cancellation keeps
// the session alive so the user can retry.
func (uc *authUseCase) Logout(sess *domain.Session) error {
	if sess.HasActiveOrder() {
		uc.log.Infof("Use Case: Cancelling order %d left open at logout by user %d", sess.CurrentOrderID, sess.UserID)
		if err := uc.orderUC.CancelOrder(sess); err != nil {
			return fmt.Errorf("could not cancel open order at logout: %w", err)
		}
	}

	uc.sessions.Delete(sess.Token)
	uc.log.Infof("Use Case: User %d logged out", sess.UserID)
	return nil
}

func (uc *authUseCase) IsAdmin(sess *domain.Session) bool {
	user, err := uc.userRepo.GetUserByID(sess.UserID)
	if err != nil || user.RoleID == 0 {
		return false
	}
	role, err := uc.roleRepo.GetRoleByID(user.RoleID)
	if err != nil {
		return false
	}
	return role.Name == domain.RoleAdmin
}

func (uc *authUseCase) RegisterUser(username, password, fullName, email, roleName string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if roleName == "" {
		roleName = domain.RoleCashier
	}

	role, err := uc.roleRepo.GetRoleByName(roleName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown role %s", domain.ErrInvalidInput, roleName)
		}
		return nil, err
	}

	user := &domain.User{
		Username: username,
		FullName: fullName,
		Email:    email,
		RoleID:   role.ID,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	created, err := uc.userRepo.CreateUser(user)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: User %s (ID: %d) registered with role %s", created.Username, created.ID, role.Name)
	return created, nil
}

func (uc *authUseCase) ListUsers() ([]domain.User, error) {
	return uc.userRepo.ListUsers()
}

func (uc *authUseCase) ListRoles() ([]domain.Role, error) {
	return uc.roleRepo.ListRoles()
}
