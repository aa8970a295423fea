package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/cveapi"
	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/log"
	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/types"
)

func reserve(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	count := c.Int("count")
	if count < 1 {
		return xerrors.Errorf("invalid count: %d", count)
	}

	resp, err := client.Reserve(context.Background(), count, c.Bool("random"), c.String("year"))
	if err != nil {
		return xerrors.Errorf("reserve error: %w", err)
	}
	log.Debug("reserved CVE IDs", log.Int("count", count))
	return printJSON(resp)
}

func showCVEID(c *cli.Context) error {
	cveID := c.Args().First()
	if cveID == "" {
		return xerrors.New("missing CVE ID argument")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if c.Bool("record") {
		record, err := client.ShowCVERecord(ctx, cveID)
		if err != nil {
			return xerrors.Errorf("show record error: %w", err)
		}
		return printJSON(record)
	}

	id, err := client.ShowCVEID(ctx, cveID)
	if err != nil {
		return xerrors.Errorf("show error: %w", err)
	}
	return printJSON(id)
}

func listCVEIDs(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	opts := cveapi.ListOptions{
		Year:  c.String("year"),
		State: c.String("state"),
	}
	if opts.ReservedBefore, err = parseTimeFlag(c.String("reserved-before")); err != nil {
		return err
	}
	if opts.ReservedAfter, err = parseTimeFlag(c.String("reserved-after")); err != nil {
		return err
	}

	it := client.ListCVEIDs(context.Background(), opts)
	for it.Next() {
		printCVEID(it.Item())
	}
	if err := it.Err(); err != nil {
		return xerrors.Errorf("list error: %w", err)
	}
	return nil
}

func countCVEs(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.CountCVEs(context.Background(), c.String("state"))
	if err != nil {
		return xerrors.Errorf("count error: %w", err)
	}
	return printJSON(resp)
}

func undoReject(c *cli.Context) error {
	cveID := c.Args().First()
	if cveID == "" {
		return xerrors.New("missing CVE ID argument")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.MoveToReserved(context.Background(), cveID)
	if err != nil {
		return xerrors.Errorf("undo-reject error: %w", err)
	}
	return printJSON(resp)
}

func parseTimeFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, xerrors.Errorf("invalid timestamp %q: %w", value, err)
	}
	return &t, nil
}

func printCVEID(item map[string]interface{}) {
	id, _ := item["cve_id"].(string)
	state, _ := item["state"].(string)
	owner, _ := item["owning_cna"].(string)
	reserved, _ := item["reserved"].(string)
	fmt.Printf("%s\t%s\t%s\t%s\n", id, types.ColorizeState(state), owner, reserved)
}
