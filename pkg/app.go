package pkg

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"k8s.io/utils/clock"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/types"
)

// Clock supplies the current time for flag defaults. Tests swap it out.
var Clock clock.PassiveClock = clock.RealClock{}

func NewApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "cve"
	app.Version = version

	app.Usage = "CVE Services client"

	app.Commands = []cli.Command{
		{
			Name:      "reserve",
			Usage:     "reserve one or more CVE IDs",
			ArgsUsage: " ",
			Action:    reserve,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count",
					Usage: "number of CVE IDs to reserve",
					Value: 1,
				},
				cli.BoolFlag{
					Name:  "random",
					Usage: "reserve a non-sequential batch of CVE IDs",
				},
				cli.StringFlag{
					Name:  "year",
					Usage: "CVE year of the reserved IDs",
					Value: strconv.Itoa(Clock.Now().Year()),
				},
			},
		},
		{
			Name:      "show",
			Usage:     "show the state of a CVE ID",
			ArgsUsage: "cve_id",
			Action:    showCVEID,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "record",
					Usage: "show the full CVE record instead of the ID state",
				},
			},
		},
		{
			Name:   "list",
			Usage:  "list the CVE IDs owned by your organization",
			Action: listCVEIDs,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "year",
					Usage: "limit to a CVE year",
				},
				cli.StringFlag{
					Name:  "state",
					Usage: "limit to a state (" + strings.Join(types.StateNames, ", ") + ")",
				},
				cli.StringFlag{
					Name:  "reserved-before",
					Usage: "limit to IDs reserved before an RFC3339 timestamp",
				},
				cli.StringFlag{
					Name:  "reserved-after",
					Usage: "limit to IDs reserved after an RFC3339 timestamp",
				},
			},
		},
		{
			Name:   "count",
			Usage:  "count CVE records",
			Action: countCVEs,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "state",
					Usage: "limit to a state (RESERVED or PUBLISHED)",
				},
			},
		},
		{
			Name:      "publish",
			Usage:     "publish a CVE record for a reserved CVE ID",
			ArgsUsage: "cve_id",
			Action:    publish,
			Flags:     recordFlags(),
		},
		{
			Name:      "update",
			Usage:     "update a published CVE record",
			ArgsUsage: "cve_id",
			Action:    updatePublished,
			Flags:     recordFlags(),
		},
		{
			Name:      "publish-adp",
			Usage:     "add or update your organization's ADP container on a CVE record",
			ArgsUsage: "cve_id",
			Action:    publishADP,
			Flags:     recordFlags(),
		},
		{
			Name:      "reject",
			Usage:     "reject a CVE ID, with or without a rejection record",
			ArgsUsage: "cve_id",
			Action:    reject,
			Flags: append(recordFlags(), cli.BoolFlag{
				Name:  "update",
				Usage: "update an existing rejection record",
			}),
		},
		{
			Name:      "undo-reject",
			Usage:     "move a rejected CVE ID without a record back to RESERVED",
			ArgsUsage: "cve_id",
			Action:    undoReject,
		},
		{
			Name:   "quota",
			Usage:  "show your organization's CVE ID quota",
			Action: quota,
		},
		{
			Name:   "org",
			Usage:  "show your organization's profile",
			Action: showOrg,
		},
		{
			Name:  "user",
			Usage: "manage users of your organization",
			Subcommands: []cli.Command{
				{
					Name:      "show",
					Usage:     "show a user",
					ArgsUsage: "username",
					Action:    showUser,
				},
				{
					Name:   "list",
					Usage:  "list all users",
					Action: listUsers,
				},
				{
					Name:      "create",
					Usage:     "create a user",
					ArgsUsage: "username",
					Action:    createUser,
					Flags:     userFlags(),
				},
				{
					Name:      "update",
					Usage:     "update a user",
					ArgsUsage: "username",
					Action:    updateUser,
					Flags:     userFlags(),
				},
				{
					Name:      "reset-key",
					Usage:     "reset a user's API key",
					ArgsUsage: "username",
					Action:    resetAPIKey,
				},
			},
		},
		{
			Name:   "ping",
			Usage:  "check whether CVE Services is reachable",
			Action: ping,
		},
	}

	return app
}

func recordFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "file, f",
			Usage: "file holding the container or full record JSON",
		},
		cli.StringFlag{
			Name:  "json, j",
			Usage: "container or full record JSON given inline",
		},
		cli.BoolFlag{
			Name:  "no-validate",
			Usage: "skip schema validation before submission",
		},
	}
}

func userFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "first-name",
			Usage: "user's first name",
		},
		cli.StringFlag{
			Name:  "last-name",
			Usage: "user's last name",
		},
		cli.StringFlag{
			Name:  "role",
			Usage: "user role (" + strings.Join(types.UserRoles, ", ") + ")",
		},
		cli.BoolFlag{
			Name:  "active",
			Usage: "mark the user as active",
		},
		cli.BoolFlag{
			Name:  "inactive",
			Usage: "mark the user as inactive",
		},
	}
}
