package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/younes-radi/order-app/internal/domain"
)

type sqliteUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLiteUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &sqliteUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash, full_name, email, role_id) VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query, user.Username, user.PasswordHash, user.FullName, user.Email, user.RoleID)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			r.log.Warnf("Duplicate username: %s", user.Username)
			return nil, fmt.Errorf("%w: username %s is already taken", domain.ErrConflict, user.Username)
		}
		r.log.Errorf("Failed to insert user %s: %v", user.Username, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new user id: %w", err)
	}
	user.ID = id

	r.log.Infof("User created with ID: %d (username: %s)", user.ID, user.Username)
	return user, nil
}

func (r *sqliteUserRepository) GetUserByID(id int64) (*domain.User, error) {
	query := `SELECT user_id, username, password_hash, full_name, email, role_id FROM users WHERE user_id = ?`

	user, err := scanUser(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch user %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch user: %w", err)
	}
	return user, nil
}

func (r *sqliteUserRepository) GetUserByUsername(username string) (*domain.User, error) {
	query := `SELECT user_id, username, password_hash, full_name, email, role_id FROM users WHERE username = ?`

	user, err := scanUser(r.db.QueryRow(query, username).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
		}
		r.log.Errorf("Failed to fetch user %s: %v", username, err)
		return nil, fmt.Errorf("could not fetch user: %w", err)
	}
	return user, nil
}

func (r *sqliteUserRepository) ListUsers() ([]domain.User, error) {
	query := `SELECT user_id, username, password_hash, full_name, email, role_id FROM users ORDER BY user_id`

	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list users: %v", err)
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate user rows: %w", err)
	}
	return users, nil
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var user domain.User
	var fullName, email sql.NullString
	var roleID sql.NullInt64

	if err := scan(&user.ID, &user.Username, &user.PasswordHash, &fullName, &email, &roleID); err != nil {
		return nil, err
	}
	user.FullName = fullName.String
	user.Email = email.String
	user.RoleID = roleID.Int64
	return &user, nil
}

type sqliteRoleRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSQLiteRoleRepository(db *sql.DB, logger *logrus.Logger) domain.RoleRepository {
	return &sqliteRoleRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteRoleRepository) CreateRole(role *domain.Role) (*domain.Role, error) {
	query := `INSERT INTO roles (name, description) VALUES (?, ?)`

	res, err := r.db.Exec(query, role.Name, role.Description)
	if err != nil {
		if isConstraintViolation(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return nil, fmt.Errorf("%w: role %s already exists", domain.ErrConflict, role.Name)
		}
		r.log.Errorf("Failed to insert role %s: %v", role.Name, err)
		return nil, fmt.Errorf("could not create role: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read new role id: %w", err)
	}
	role.ID = id
	return role, nil
}

func (r *sqliteRoleRepository) GetRoleByID(id int64) (*domain.Role, error) {
	query := `SELECT role_id, name, description FROM roles WHERE role_id = ?`

	role, err := scanRole(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: role %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to fetch role %d: %v", id, err)
		return nil, fmt.Errorf("could not fetch role: %w", err)
	}
	return role, nil
}

func (r *sqliteRoleRepository) GetRoleByName(name string) (*domain.Role, error) {
	query := `SELECT role_id, name, description FROM roles WHERE name = ?`

	role, err := scanRole(r.db.QueryRow(query, name).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: role %s", domain.ErrNotFound, name)
		}
		r.log.Errorf("Failed to fetch role %s: %v", name, err)
		return nil, fmt.Errorf("could not fetch role: %w", err)
	}
	return role, nil
}

func (r *sqliteRoleRepository) ListRoles() ([]domain.Role, error) {
	query := `SELECT role_id, name, description FROM roles ORDER BY role_id`

	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list roles: %v", err)
		return nil, fmt.Errorf("could not list roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan role row: %w", err)
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate role rows: %w", err)
	}
	return roles, nil
}

func scanRole(scan func(dest ...any) error) (*domain.Role, error) {
	var role domain.Role
	var description sql.NullString

	if err := scan(&role.ID, &role.Name, &description); err != nil {
		return nil, err
	}
	role.Description = description.String
	return &role, nil
}
