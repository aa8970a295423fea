package pkg

import (
	"context"
	"encoding/json"
	"os"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

func publish(c *cli.Context) error {
	return submitRecord(c, func(ctx context.Context, rec map[string]interface{}) (map[string]interface{}, error) {
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		return client.Publish(ctx, c.Args().First(), rec, !c.Bool("no-validate"))
	})
}

func updatePublished(c *cli.Context) error {
	return submitRecord(c, func(ctx context.Context, rec map[string]interface{}) (map[string]interface{}, error) {
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		return client.UpdatePublished(ctx, c.Args().First(), rec, !c.Bool("no-validate"))
	})
}

func publishADP(c *cli.Context) error {
	return submitRecord(c, func(ctx context.Context, rec map[string]interface{}) (map[string]interface{}, error) {
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		return client.PublishADP(ctx, c.Args().First(), rec, !c.Bool("no-validate"))
	})
}

// reject moves an ID to REJECTED directly when no record payload was given,
// and publishes or updates a rejection record otherwise.
func reject(c *cli.Context) error {
	cveID := c.Args().First()
	if cveID == "" {
		return xerrors.New("missing CVE ID argument")
	}

	if c.String("file") == "" && c.String("json") == "" {
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.MoveToRejected(context.Background(), cveID)
		if err != nil {
			return xerrors.Errorf("reject error: %w", err)
		}
		return printJSON(resp)
	}

	return submitRecord(c, func(ctx context.Context, rec map[string]interface{}) (map[string]interface{}, error) {
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		if c.Bool("update") {
			return client.UpdateRejected(ctx, cveID, rec, !c.Bool("no-validate"))
		}
		return client.Reject(ctx, cveID, rec, !c.Bool("no-validate"))
	})
}

func submitRecord(c *cli.Context, submit func(context.Context, map[string]interface{}) (map[string]interface{}, error)) error {
	if c.Args().First() == "" {
		return xerrors.New("missing CVE ID argument")
	}

	rec, err := readRecord(c)
	if err != nil {
		return err
	}

	resp, err := submit(context.Background(), rec)
	if err != nil {
		return xerrors.Errorf("submit error: %w", err)
	}
	return printJSON(resp)
}

// readRecord loads the record payload from --file or inline --json.
func readRecord(c *cli.Context) (map[string]interface{}, error) {
	path := c.String("file")
	inline := c.String("json")
	if path == "" && inline == "" {
		return nil, xerrors.New("no record data given, use --file or --json")
	}
	if path != "" && inline != "" {
		return nil, xerrors.New("--file and --json are mutually exclusive")
	}

	data := []byte(inline)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, xerrors.Errorf("unable to read record file: %w", err)
		}
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, xerrors.Errorf("unable to parse record JSON: %w", err)
	}
	return rec, nil
}
