package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lokalBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	user.CreatedAt = time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, phone, full_name, password, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		RETURNING id
	`, user.Email, user.Phone, user.FullName, user.Password, user.Role, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.IsActive = true

	// Providers get their profile row at role assignment.
	if user.Role == models.RoleProvider {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO provider_profiles (user_id, is_verified, is_active, created_at)
			VALUES ($1, FALSE, TRUE, NOW())
		`, user.ID)
		if err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, phone, full_name, password, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Phone, &user.FullName, &user.Password,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, phone, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Phone, &user.FullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, role string, page, pageSize int) (models.UserListResponse, error) {
	resp := models.UserListResponse{Page: page, PageSize: pageSize, Users: []models.User{}}

	countQuery := `SELECT COUNT(*) FROM users`
	listQuery := `
		SELECT id, email, phone, full_name, role, is_active, created_at, updated_at
		FROM users
	`
	args := []any{}
	if role != "" {
		countQuery += ` WHERE role = $1`
		listQuery += ` WHERE role = $1`
		args = append(args, role)
	}
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&resp.Total); err != nil {
		return resp, err
	}

	offset := (page - 1) * pageSize
	if role != "" {
		listQuery += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, pageSize, offset)
	} else {
		listQuery += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, pageSize, offset)
	}

	rows, err := r.DB.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return resp, err
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Phone, &u.FullName, &u.Role,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return resp, err
		}
		resp.Users = append(resp.Users, u)
	}
	return resp, rows.Err()
}

// UpdateUserRole switches the role and, when promoting to provider, creates
// the profile row in the same transaction if one does not exist yet.
func (r *UserRepository) UpdateUserRole(ctx context.Context, userID int, role string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}

	if role == models.RoleProvider {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO provider_profiles (user_id, is_verified, is_active, created_at)
			SELECT $1, FALSE, TRUE, NOW()
			WHERE NOT EXISTS (SELECT 1 FROM provider_profiles WHERE user_id = $1)
		`, userID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *UserRepository) SetUserActive(ctx context.Context, userID int, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (user_id, role, refresh_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET role = EXCLUDED.role, refresh_token = EXCLUDED.refresh_token,
		    expires_at = EXCLUDED.expires_at, created_at = NOW()
	`, session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, role, refresh_token, expires_at, created_at
		FROM sessions
		WHERE refresh_token = $1
	`, refreshToken).Scan(&s.ID, &s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, nil
		}
		return models.Session{}, err
	}
	return s, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
