package pkg

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/config"
	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/cveapi"
)

// newClient builds an API client from the resolved CLI configuration.
func newClient() (*cveapi.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cveapi.New(cfg.Username, cfg.Org, cfg.APIKey, cveapi.Options{
		Env: cfg.Environment,
		URL: cfg.URL,
	})
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
