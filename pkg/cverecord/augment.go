package cverecord

import (
	"context"
	"os"

	"golang.org/x/xerrors"
)

// GeneratorEnv overrides the engine value injected into the x_generator
// field. Setting it to GeneratorOmit skips the field entirely.
const (
	GeneratorEnv  = "CVE_GENERATOR"
	GeneratorOmit = "-"
)

const (
	providerMetadataKey = "providerMetadata"
	orgIDKey            = "orgId"
	generatorKey        = "x_generator"
	engineKey           = "engine"
)

// OrgIdentityResolver resolves the org id of the organization submitting a
// record. Fetching it usually requires a round-trip to CVE Services, so the
// lookup is injected rather than performed here.
type OrgIdentityResolver interface {
	OrgID(ctx context.Context) (string, error)
}

// EnsureProviderMetadata returns a container that carries a providerMetadata
// object. If one is already present the container is returned unchanged;
// otherwise the org id is fetched through resolver and set as the only
// member. The input is never mutated.
func EnsureProviderMetadata(ctx context.Context, container map[string]interface{}, resolver OrgIdentityResolver) (map[string]interface{}, error) {
	if _, ok := container[providerMetadataKey]; ok {
		return container, nil
	}
	orgID, err := resolver.OrgID(ctx)
	if err != nil {
		return nil, xerrors.Errorf("unable to resolve org identity: %w", err)
	}
	out := cloneContainer(container)
	out[providerMetadataKey] = map[string]interface{}{orgIDKey: orgID}
	return out, nil
}

// EnsureGenerator returns a container that identifies the tool which produced
// it in the x_generator field. An existing value is never overridden. The
// CVE_GENERATOR environment variable overrides the default engine string;
// setting it to "-" omits the field entirely. The input is never mutated.
func EnsureGenerator(container map[string]interface{}) map[string]interface{} {
	if _, ok := container[generatorKey]; ok {
		return container
	}
	engine := os.Getenv(GeneratorEnv)
	if engine == GeneratorOmit {
		return container
	}
	if engine == "" {
		engine = "cvelib " + Version
	}
	out := cloneContainer(container)
	out[generatorKey] = map[string]interface{}{engineKey: engine}
	return out
}

func cloneContainer(container map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(container)+1)
	for k, v := range container {
		out[k] = v
	}
	return out
}
