/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicware/patienthistory/db"
)

var CmdUser = &cli.Command{
	Name:  "user",
	Usage: "Manage user accounts",
	Flags: []cli.Flag{databaseURLFlag},
	Commands: []*cli.Command{
		{
			Name:  "add",
			Usage: "Create a user account",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Required: true, Usage: "login name"},
				&cli.StringFlag{Name: "display-name", Required: true, Usage: "name shown in pages"},
				&cli.StringFlag{Name: "password", Sources: cli.EnvVars("USER_PASSWORD"), Usage: "login password"},
				&cli.BoolFlag{Name: "admin", Usage: "grant write access to every section"},
			},
			Action: userAdd,
		},
		{
			Name:   "list",
			Usage:  "List user accounts",
			Action: userList,
		},
	},
}

func userAdd(ctx context.Context, cmd *cli.Command) error {
	password := cmd.String("password")
	if password == "" {
		return errPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		user, err := db.CreateUser(ctx, db.CreateUserInput{
			Username:     cmd.String("username"),
			DisplayName:  cmd.String("display-name"),
			PasswordHash: hash,
			IsAdmin:      cmd.Bool("admin"),
		})
		if err != nil {
			return err
		}

		cliLogger.Info("Created user", "user_id", user.ID.String(), "username", user.Username, "admin", user.IsAdmin)
		fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
		return nil
	})
}

func userList(ctx context.Context, cmd *cli.Command) error {
	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		users, err := db.ListUsers(ctx)
		if err != nil {
			return err
		}

		printUsers(os.Stdout, users)
		return nil
	})
}

func printUsers(w io.Writer, users []db.User) {
	for _, user := range users {
		role := "user"
		if user.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", user.ID, user.Username, user.DisplayName, role)
	}
}
