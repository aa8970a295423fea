package cveapi

import (
	"context"
	"net/url"
)

// ShowOrg fetches the client organization's profile, including its UUID.
func (c *Client) ShowOrg(ctx context.Context) (map[string]interface{}, error) {
	return c.get(ctx, "org/"+c.org, nil)
}

// Quota fetches the organization's CVE ID reservation quota.
func (c *Client) Quota(ctx context.Context) (map[string]interface{}, error) {
	return c.get(ctx, "org/"+c.org+"/id_quota", nil)
}

// ShowUser fetches one user of the client organization.
func (c *Client) ShowUser(ctx context.Context, username string) (map[string]interface{}, error) {
	return c.get(ctx, "org/"+c.org+"/user/"+username, nil)
}

// CreateUser creates a user in the client organization. userData is sent as
// the JSON request body.
func (c *Client) CreateUser(ctx context.Context, userData map[string]interface{}) (map[string]interface{}, error) {
	return c.post(ctx, "org/"+c.org+"/user", nil, userData)
}

// UpdateUser updates fields of a user. CVE Services takes the updated fields
// as query parameters on this endpoint, not as a body.
func (c *Client) UpdateUser(ctx context.Context, username string, fields map[string]string) (map[string]interface{}, error) {
	params := url.Values{}
	for k, v := range fields {
		params.Set(k, v)
	}
	return c.put(ctx, "org/"+c.org+"/user/"+username, params, nil)
}

// ResetAPIKey rotates a user's API key and returns the new secret.
func (c *Client) ResetAPIKey(ctx context.Context, username string) (map[string]interface{}, error) {
	return c.put(ctx, "org/"+c.org+"/user/"+username+"/reset_secret", nil, nil)
}

// ListUsers iterates over all users of the client organization.
func (c *Client) ListUsers(ctx context.Context) *PageIterator {
	return c.newPageIterator(ctx, "org/"+c.org+"/users", "users", nil)
}

// Ping probes the service health endpoint. Unlike every other operation it
// never propagates a transport failure; the failure is the result. A nil
// return means the service is reachable and healthy.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "health-check", nil)
	return err
}
