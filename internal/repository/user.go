package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/monohq/mono/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	All() ([]*model.User, error)
	Update(id string, patch *model.UserPatch) (*model.User, error)
	UpdateSession(id string, refreshToken *string, isOnline bool) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, username, email, password, is_online, role, refresh_token, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		user.IsOnline,
		user.Role,
		user.RefreshToken,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) All() ([]*model.User, error) {
	users := []*model.User{}
	query := `SELECT * FROM users ORDER BY created_at`

	err := r.db.Select(&users, query)
	return users, err
}

func (r *userRepository) Update(id string, patch *model.UserPatch) (*model.User, error) {
	set := []string{}
	args := []any{}

	if patch.Username != nil {
		set = append(set, "username")
		args = append(args, *patch.Username)
	}
	if patch.Email != nil {
		set = append(set, "email")
		args = append(args, *patch.Email)
	}
	if patch.Password != nil {
		set = append(set, "password")
		args = append(args, *patch.Password)
	}

	if len(set) > 0 {
		set = append(set, "updated_at")
		args = append(args, time.Now().UTC())

		query, args := buildUpdate("users", set, args, "id = ?", id)
		result, err := r.db.Exec(r.db.Rebind(query), args...)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicateEmail
			}
			return nil, err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrUserNotFound
		}
	}

	return r.ByID(id)
}

func (r *userRepository) UpdateSession(id string, refreshToken *string, isOnline bool) error {
	query := `UPDATE users SET refresh_token = $1, is_online = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query, refreshToken, isOnline, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
