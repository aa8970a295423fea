package cveapi

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/cverecord"
)

// Envelope keys CVE Services expects submitted containers under.
const (
	cnaContainerKey = "cnaContainer"
	adpContainerKey = "adpContainer"
)

// OrgID resolves the UUID of the client's own organization. It satisfies
// cverecord.OrgIdentityResolver so the provider metadata augmentation can
// fetch the id on demand.
func (c *Client) OrgID(ctx context.Context) (string, error) {
	org, err := c.ShowOrg(ctx)
	if err != nil {
		return "", err
	}
	uuid, ok := org["UUID"].(string)
	if !ok {
		return "", xerrors.New("org response carries no UUID")
	}
	return uuid, nil
}

// prepareCNA runs the fixed submission pipeline for a CNA container: extract
// the container, fill in provider metadata and generator identity, then
// validate against schema unless validation was explicitly skipped. A
// validation failure aborts before any submission request is made.
func (c *Client) prepareCNA(ctx context.Context, rec map[string]interface{}, validate bool, schema cverecord.SchemaName) (map[string]interface{}, error) {
	container, err := cverecord.ExtractCNAContainer(rec)
	if err != nil {
		return nil, err
	}
	return c.finishContainer(ctx, container, validate, schema)
}

// prepareADP is prepareCNA for ADP containers.
func (c *Client) prepareADP(ctx context.Context, rec map[string]interface{}, validate bool) (map[string]interface{}, error) {
	container, err := cverecord.ExtractADPContainer(rec)
	if err != nil {
		return nil, err
	}
	return c.finishContainer(ctx, container, validate, cverecord.SchemaADP)
}

func (c *Client) finishContainer(ctx context.Context, container map[string]interface{}, validate bool, schema cverecord.SchemaName) (map[string]interface{}, error) {
	container, err := cverecord.EnsureProviderMetadata(ctx, container, c)
	if err != nil {
		return nil, err
	}
	container = cverecord.EnsureGenerator(container)
	if validate {
		if err := cverecord.Validate(container, schema); err != nil {
			return nil, err
		}
	}
	return container, nil
}

// Publish creates the CVE record for a reserved CVE ID from a JSON object
// holding the CNA container data, or a full v5 record wrapping it.
func (c *Client) Publish(ctx context.Context, cveID string, rec map[string]interface{}, validate bool) (map[string]interface{}, error) {
	container, err := c.prepareCNA(ctx, rec, validate, cverecord.SchemaCNAPublished)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, "cve/"+cveID+"/cna", nil, map[string]interface{}{cnaContainerKey: container})
}

// UpdatePublished updates the CNA container of an already published record.
func (c *Client) UpdatePublished(ctx context.Context, cveID string, rec map[string]interface{}, validate bool) (map[string]interface{}, error) {
	container, err := c.prepareCNA(ctx, rec, validate, cverecord.SchemaCNAPublished)
	if err != nil {
		return nil, err
	}
	return c.put(ctx, "cve/"+cveID+"/cna", nil, map[string]interface{}{cnaContainerKey: container})
}

// PublishADP adds or updates the client organization's ADP container on an
// existing record.
func (c *Client) PublishADP(ctx context.Context, cveID string, rec map[string]interface{}, validate bool) (map[string]interface{}, error) {
	container, err := c.prepareADP(ctx, rec, validate)
	if err != nil {
		return nil, err
	}
	return c.put(ctx, "cve/"+cveID+"/adp", nil, map[string]interface{}{adpContainerKey: container})
}

// Reject publishes a rejection record for a CVE ID.
func (c *Client) Reject(ctx context.Context, cveID string, rec map[string]interface{}, validate bool) (map[string]interface{}, error) {
	container, err := c.prepareCNA(ctx, rec, validate, cverecord.SchemaCNARejected)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, "cve/"+cveID+"/reject", nil, map[string]interface{}{cnaContainerKey: container})
}

// UpdateRejected updates the rejection record of a rejected CVE ID.
func (c *Client) UpdateRejected(ctx context.Context, cveID string, rec map[string]interface{}, validate bool) (map[string]interface{}, error) {
	container, err := c.prepareCNA(ctx, rec, validate, cverecord.SchemaCNARejected)
	if err != nil {
		return nil, err
	}
	return c.put(ctx, "cve/"+cveID+"/reject", nil, map[string]interface{}{cnaContainerKey: container})
}

// ShowCVERecord fetches the full v5 record of a CVE ID.
func (c *Client) ShowCVERecord(ctx context.Context, cveID string) (map[string]interface{}, error) {
	return c.get(ctx, "cve/"+cveID, nil)
}
