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

	"github.com/clinicware/patienthistory/db"
)

var aclTargetFlags = []cli.Flag{
	&cli.StringFlag{Name: "username", Required: true, Usage: "user to change"},
	&cli.StringFlag{Name: "section", Required: true, Usage: "ACL section, e.g. patients or squads"},
	&cli.StringFlag{Name: "value", Required: true, Usage: "ACL value, e.g. med, demo or a squad name"},
}

var CmdACL = &cli.Command{
	Name:  "acl",
	Usage: "Manage access control grants",
	Flags: []cli.Flag{databaseURLFlag},
	Commands: []*cli.Command{
		{
			Name:  "grant",
			Usage: "Grant a user access to a section value",
			Flags: append(append([]cli.Flag{}, aclTargetFlags...),
				&cli.StringFlag{Name: "level", Value: string(db.AccessWrite), Usage: "view, write or addonly"},
			),
			Action: aclGrant,
		},
		{
			Name:   "revoke",
			Usage:  "Revoke a grant",
			Flags:  aclTargetFlags,
			Action: aclRevoke,
		},
		{
			Name:  "list",
			Usage: "List the grants of a user",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Required: true, Usage: "user to list"},
			},
			Action: aclList,
		},
	},
}

func aclGrant(ctx context.Context, cmd *cli.Command) error {
	level, err := db.ParseAccessLevel(cmd.String("level"))
	if err != nil {
		return err
	}

	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		user, err := db.GetUserByUsername(ctx, cmd.String("username"))
		if err != nil {
			return err
		}

		section, value := cmd.String("section"), cmd.String("value")
		if err := db.GrantACL(ctx, user.ID.String(), section, value, level); err != nil {
			return err
		}

		cliLogger.Info("Granted access", "username", user.Username, "section", section, "value", value, "level", string(level))
		fmt.Printf("Granted %s:%s to %s\n", section, value, user.Username)
		return nil
	})
}

func aclRevoke(ctx context.Context, cmd *cli.Command) error {
	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		user, err := db.GetUserByUsername(ctx, cmd.String("username"))
		if err != nil {
			return err
		}

		section, value := cmd.String("section"), cmd.String("value")
		if err := db.RevokeACL(ctx, user.ID.String(), section, value); err != nil {
			return err
		}

		cliLogger.Info("Revoked access", "username", user.Username, "section", section, "value", value)
		fmt.Printf("Revoked %s:%s from %s\n", section, value, user.Username)
		return nil
	})
}

func aclList(ctx context.Context, cmd *cli.Command) error {
	return withDatabase(ctx, cmd, func(ctx context.Context) error {
		user, err := db.GetUserByUsername(ctx, cmd.String("username"))
		if err != nil {
			return err
		}

		grants, err := db.ListACLGrants(ctx, user.ID.String())
		if err != nil {
			return err
		}

		printGrants(os.Stdout, grants)
		return nil
	})
}

func printGrants(w io.Writer, grants []db.ACLGrant) {
	for _, grant := range grants {
		fmt.Fprintf(w, "%s:%s\t%s\n", grant.Section, grant.Value, grant.Level)
	}
}
