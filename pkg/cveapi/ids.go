package cveapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/types"
)

// Reserve reserves count CVE IDs for the given year. With count > 1 the
// batch is requested as sequential unless random is set. The response holds
// the reserved IDs and the remaining quota.
func (c *Client) Reserve(ctx context.Context, count int, random bool, year string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("cve_year", year)
	params.Set("amount", strconv.Itoa(count))
	params.Set("short_name", c.org)
	if count > 1 {
		batchType := "sequential"
		if random {
			batchType = "nonsequential"
		}
		params.Set("batch_type", batchType)
	}
	return c.post(ctx, "cve-id", params, nil)
}

// ShowCVEID fetches the state and ownership data of a CVE ID.
func (c *Client) ShowCVEID(ctx context.Context, cveID string) (map[string]interface{}, error) {
	return c.get(ctx, "cve-id/"+cveID, nil)
}

// MoveToReserved moves a CVE ID back to the RESERVED state. Only possible
// for IDs in the REJECTED state without a record.
func (c *Client) MoveToReserved(ctx context.Context, cveID string) (map[string]interface{}, error) {
	return c.moveToState(ctx, cveID, types.StateReserved)
}

// MoveToRejected moves a CVE ID to the REJECTED state without publishing a
// rejection record. Only possible for IDs in the RESERVED state.
func (c *Client) MoveToRejected(ctx context.Context, cveID string) (map[string]interface{}, error) {
	return c.moveToState(ctx, cveID, types.StateRejected)
}

func (c *Client) moveToState(ctx context.Context, cveID string, state types.State) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("state", state.String())
	return c.put(ctx, "cve-id/"+cveID, params, nil)
}

// ListOptions filters a CVE ID listing. Zero-value fields are left out of
// the query.
type ListOptions struct {
	Year  string
	State string
	// ReservedBefore and ReservedAfter bound the reservation time,
	// exclusively on both ends.
	ReservedBefore *time.Time
	ReservedAfter  *time.Time
}

// ListCVEIDs iterates over the organization's CVE IDs matching opts.
func (c *Client) ListCVEIDs(ctx context.Context, opts ListOptions) *PageIterator {
	params := url.Values{}
	if opts.Year != "" {
		params.Set("cve_id_year", opts.Year)
	}
	if opts.State != "" {
		params.Set("state", strings.ToUpper(opts.State))
	}
	if opts.ReservedBefore != nil {
		params.Set("time_reserved.lt", opts.ReservedBefore.Format(time.RFC3339))
	}
	if opts.ReservedAfter != nil {
		params.Set("time_reserved.gt", opts.ReservedAfter.Format(time.RFC3339))
	}
	return c.newPageIterator(ctx, "cve-id", "cve_ids", params)
}

// CountCVEs returns the count of CVE records, optionally filtered by state.
// Only RESERVED and PUBLISHED records can be counted.
func (c *Client) CountCVEs(ctx context.Context, state string) (map[string]interface{}, error) {
	params := url.Values{}
	if state != "" {
		params.Set("state", strings.ToUpper(state))
	}
	return c.get(ctx, "cve_count", params)
}
