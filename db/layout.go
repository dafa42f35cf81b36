/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
)

// ListLayoutOptions returns the active field definitions of a layout form,
// ordered by group then sequence.
func ListLayoutOptions(ctx context.Context, formID string) ([]LayoutOption, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT form_id, field_id, group_name, title, seq, data_type, uor,
		       fld_length, max_length, list_id, description
		FROM layout_options
		WHERE form_id = $1 AND uor > 0
		ORDER BY group_name, seq
	`, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to list layout options: %w", err)
	}
	defer rows.Close()

	var options []LayoutOption
	for rows.Next() {
		var option LayoutOption
		if err := rows.Scan(
			&option.FormID,
			&option.FieldID,
			&option.GroupName,
			&option.Title,
			&option.Seq,
			&option.DataType,
			&option.UOR,
			&option.FieldLength,
			&option.MaxLength,
			&option.ListID,
			&option.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan layout option: %w", err)
		}
		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layout options: %w", err)
	}

	return options, nil
}

// ListListOptions returns the choices of the given lists keyed by list id.
func ListListOptions(ctx context.Context, listIDs []string) (map[string][]ListOption, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	lists := make(map[string][]ListOption, len(listIDs))
	if len(listIDs) == 0 {
		return lists, nil
	}

	rows, err := pool.Query(ctx, `
		SELECT list_id, option_id, title, seq, is_default
		FROM list_options
		WHERE list_id = ANY($1)
		ORDER BY list_id, seq, title
	`, listIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list list options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var option ListOption
		if err := rows.Scan(&option.ListID, &option.OptionID, &option.Title, &option.Seq, &option.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan list option: %w", err)
		}
		lists[option.ListID] = append(lists[option.ListID], option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating list options: %w", err)
	}

	return lists, nil
}
