package pkg

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

func quota(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Quota(context.Background())
	if err != nil {
		return xerrors.Errorf("quota error: %w", err)
	}
	return printJSON(resp)
}

func showOrg(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ShowOrg(context.Background())
	if err != nil {
		return xerrors.Errorf("org error: %w", err)
	}
	return printJSON(resp)
}

func showUser(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return xerrors.New("missing username argument")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ShowUser(context.Background(), username)
	if err != nil {
		return xerrors.Errorf("user show error: %w", err)
	}
	return printJSON(resp)
}

func listUsers(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	it := client.ListUsers(context.Background())
	for it.Next() {
		if err := printJSON(it.Item()); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return xerrors.Errorf("user list error: %w", err)
	}
	return nil
}

func createUser(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return xerrors.New("missing username argument")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	userData := map[string]interface{}{
		"username": username,
	}
	name := map[string]interface{}{}
	if v := c.String("first-name"); v != "" {
		name["first"] = v
	}
	if v := c.String("last-name"); v != "" {
		name["last"] = v
	}
	if len(name) > 0 {
		userData["name"] = name
	}
	if v := c.String("role"); v != "" {
		userData["authority"] = map[string]interface{}{
			"active_roles": []string{v},
		}
	}

	resp, err := client.CreateUser(context.Background(), userData)
	if err != nil {
		return xerrors.Errorf("user create error: %w", err)
	}
	return printJSON(resp)
}

func updateUser(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return xerrors.New("missing username argument")
	}
	if c.Bool("active") && c.Bool("inactive") {
		return xerrors.New("--active and --inactive are mutually exclusive")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	fields := map[string]string{}
	if v := c.String("first-name"); v != "" {
		fields["name.first"] = v
	}
	if v := c.String("last-name"); v != "" {
		fields["name.last"] = v
	}
	if v := c.String("role"); v != "" {
		fields["active_roles.add"] = v
	}
	if c.Bool("active") {
		fields["active"] = "true"
	}
	if c.Bool("inactive") {
		fields["active"] = "false"
	}
	if len(fields) == 0 {
		return xerrors.New("nothing to update")
	}

	resp, err := client.UpdateUser(context.Background(), username, fields)
	if err != nil {
		return xerrors.Errorf("user update error: %w", err)
	}
	return printJSON(resp)
}

func resetAPIKey(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return xerrors.New("missing username argument")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ResetAPIKey(context.Background(), username)
	if err != nil {
		return xerrors.Errorf("reset-key error: %w", err)
	}
	return printJSON(resp)
}

func ping(c *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Ping(context.Background()); err != nil {
		fmt.Printf("CVE Services is unreachable: %v\n", err)
		return nil
	}
	fmt.Println("CVE Services is up")
	return nil
}
