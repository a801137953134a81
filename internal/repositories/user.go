package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
)

// UserRepository implements [models.Repository] for [models.User] persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database with a generated ID.
//
// A username collision surfaces as [shared.ErrUsernameTaken], enforced by the
// unique index rather than a read-then-write check.
func (r *UserRepository) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	id := shared.GenerateID()
	user.SetID(id)

	query := `
		INSERT INTO users (id, username, password_hash, email, preferences, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, user.Username(), user.PasswordHash(), user.Email(), user.Preferences(), user.CreatedAt())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return shared.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(id string) (*models.User, error) {
	return r.getBy("id", id)
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getBy("username", username)
}

func (r *UserRepository) getBy(column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, email, preferences, created_at
		FROM users
		WHERE %s = ?
	`, column)

	var (
		userID      string
		username    string
		hash        string
		email       sql.NullString
		preferences sql.NullString
		createdAt   time.Time
	)

	err := r.db.QueryRow(query, value).Scan(&userID, &username, &hash, &email, &preferences, &createdAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user := models.NewUser(username, hash)
	user.SetID(userID)
	user.SetCreatedAt(createdAt)
	if email.Valid {
		user.SetEmail(email.String)
	}
	if preferences.Valid {
		user.SetPreferences(preferences.String)
	}

	return user, nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return shared.ErrUserNotFound
	}

	return nil
}

// List retrieves all users matching the given criteria.
func (r *UserRepository) List(criteria map[string]any) ([]*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, preferences, created_at
		FROM users
		WHERE 1 = 1
	`

	args := []any{}

	if username, ok := criteria["username"].(string); ok && username != "" {
		query += " AND username = ?"
		args = append(args, username)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var (
			userID      string
			username    string
			hash        string
			email       sql.NullString
			preferences sql.NullString
			createdAt   time.Time
		)

		if err := rows.Scan(&userID, &username, &hash, &email, &preferences, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		user := models.NewUser(username, hash)
		user.SetID(userID)
		user.SetCreatedAt(createdAt)
		if email.Valid {
			user.SetEmail(email.String)
		}
		if preferences.Valid {
			user.SetPreferences(preferences.String)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}
