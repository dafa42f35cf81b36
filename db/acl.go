/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ACLCheck returns the level the user holds on a section/value pair.
// Administrators hold write on everything. Unknown users hold nothing.
func ACLCheck(ctx context.Context, userID, section, value string) (AccessLevel, error) {
	if pool == nil {
		return AccessNone, ErrDatabaseConnectionNotInitialized
	}

	var (
		isAdmin bool
		level   *string
	)

	query := `
		SELECT u.is_admin, g.level
		FROM users u
		LEFT JOIN acl_grants g
		       ON g.user_id = u.id AND g.section = $2 AND g.value = $3
		WHERE u.id = $1
	`
	if err := pool.QueryRow(ctx, query, userID, section, value).Scan(&isAdmin, &level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccessNone, nil
		}
		return AccessNone, fmt.Errorf("failed to check acl %s/%s: %w", section, value, err)
	}

	if isAdmin {
		return AccessWrite, nil
	}
	if level == nil {
		return AccessNone, nil
	}

	return ParseAccessLevel(*level)
}

// GrantACL sets the level of a user on a section/value pair.
func GrantACL(ctx context.Context, userID, section, value string, level AccessLevel) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	section = strings.TrimSpace(section)
	value = strings.TrimSpace(value)
	if section == "" || value == "" {
		return ErrACLSectionRequired
	}
	if level == AccessNone {
		return RevokeACL(ctx, userID, section, value)
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO acl_grants (user_id, section, value, level)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, section, value) DO UPDATE SET level = EXCLUDED.level
	`, userID, section, value, string(level))
	if err != nil {
		return fmt.Errorf("failed to grant acl: %w", err)
	}

	return nil
}

// RevokeACL removes a grant.
func RevokeACL(ctx context.Context, userID, section, value string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx,
		`DELETE FROM acl_grants WHERE user_id = $1 AND section = $2 AND value = $3`,
		userID, strings.TrimSpace(section), strings.TrimSpace(value),
	)
	if err != nil {
		return fmt.Errorf("failed to revoke acl: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrACLGrantNotFound
	}

	return nil
}

// ListACLGrants returns the grants of a user.
func ListACLGrants(ctx context.Context, userID string) ([]ACLGrant, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT user_id, section, value, level, created_at
		FROM acl_grants
		WHERE user_id = $1
		ORDER BY section, value
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list acl grants: %w", err)
	}
	defer rows.Close()

	var grants []ACLGrant
	for rows.Next() {
		var (
			grant ACLGrant
			level string
		)
		if err := rows.Scan(&grant.UserID, &grant.Section, &grant.Value, &level, &grant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan acl grant: %w", err)
		}
		grant.Level = AccessLevel(level)
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating acl grants: %w", err)
	}

	return grants, nil
}
