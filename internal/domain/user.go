package domain

import "golang.org/x/crypto/bcrypt"

const (
	RoleAdmin   = "Admin"
	RoleCashier = "Cashier"
)

type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	RoleID       int64  `json:"role_id"`
}

// SetPassword stores a bcrypt hash of plain. The clear text is never kept.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

type UserRepository interface {
	CreateUser(user *User) (*User, error)
	GetUserByID(id int64) (*User, error)
	GetUserByUsername(username string) (*User, error)
	ListUsers() ([]User, error)
}

type RoleRepository interface {
	CreateRole(role *Role) (*Role, error)
	GetRoleByID(id int64) (*Role, error)
	GetRoleByName(name string) (*Role, error)
	ListRoles() ([]Role, error)
}

// AuthUseCase owns login sessions and user administration. Logout cancels
// any order the session is still building before the session is dropped,
// so reserved stock never leaks.
type AuthUseCase interface {
	Login(username, password string) (*Session, *User, error)
	Logout(sess *Session) error
	IsAdmin(sess *Session) bool
	RegisterUser(username, password, fullName, email, roleName string) (*User, error)
	ListUsers() ([]User, error)
	ListRoles() ([]Role, error)
}
