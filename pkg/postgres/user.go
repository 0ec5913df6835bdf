package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chupohan/brigade-duty/pkg/db"
)

// GetUser fetches an account by ID, returning nil when it does not exist.
func (d *DB) GetUser(ctx context.Context, id int64) (*db.User, error) {
	var user db.User
	err := d.pool.QueryRow(ctx, `
		SELECT id, username, password, name, role
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches an account by username, returning nil when it
// does not exist.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (*db.User, error) {
	var user db.User
	err := d.pool.QueryRow(ctx, `
		SELECT id, username, password, name, role
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by username: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a volunteer account.
func (d *DB) CreateUser(ctx context.Context, username, passwordHash, name, role string) (*db.User, error) {
	user := db.User{Username: username, PasswordHash: passwordHash, Name: name, Role: role}
	err := d.pool.QueryRow(ctx, `
		INSERT INTO users (username, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, passwordHash, name, role).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

// ListUsers returns all accounts ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]db.User, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, username, password, name, role
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

var _ db.Store = (*DB)(nil)
