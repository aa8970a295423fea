package cverecord

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	version "github.com/hashicorp/go-version"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/xerrors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// SchemaName identifies one of the bundled CVE v5 JSON schemas.
type SchemaName int

const (
	// SchemaCNAPublished validates a CNA container of a published record.
	// It is the default schema for general validation calls.
	SchemaCNAPublished SchemaName = iota
	// SchemaCNARejected validates a CNA container of a rejected record.
	SchemaCNARejected
	// SchemaADP validates an ADP container.
	SchemaADP
	// SchemaBundled validates a full v5 CVE record.
	SchemaBundled
)

// Schema file names follow the upstream convention
// CVE_JSON_<name>_<version>.json; the highest version per name wins.
var schemaPrefixes = map[SchemaName]string{
	SchemaCNAPublished: "CVE_JSON_cnaPublishedContainer",
	SchemaCNARejected:  "CVE_JSON_cnaRejectedContainer",
	SchemaADP:          "CVE_JSON_adpContainer",
	SchemaBundled:      "CVE_JSON_bundled",
}

func (n SchemaName) String() string {
	if prefix, ok := schemaPrefixes[n]; ok {
		return prefix
	}
	return fmt.Sprintf("unknown schema (%d)", int(n))
}

var (
	schemaMu sync.Mutex
	compiled = map[SchemaName]*gojsonschema.Schema{}
)

// ValidationError describes a failed schema validation. Violations holds
// every violation found, sorted by message text so the order is reproducible
// regardless of schema traversal order.
type ValidationError struct {
	Schema     string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation against %s failed:\n%s", e.Schema, strings.Join(e.Violations, "\n"))
}

// Validate checks rec against the named schema. All violations are collected,
// not just the first; a non-nil error of type *ValidationError carries the
// sorted list. The input is never mutated and no network I/O happens here.
func Validate(rec map[string]interface{}, name SchemaName) error {
	schema, err := loadSchema(name)
	if err != nil {
		return xerrors.Errorf("unable to load %s schema: %w", name, err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(rec))
	if err != nil {
		return xerrors.Errorf("unable to validate against %s schema: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		violations = append(violations, violation.String())
	}
	sort.Strings(violations)
	return &ValidationError{Schema: name.String(), Violations: violations}
}

// ValidateDefault checks rec against the published CNA container schema.
func ValidateDefault(rec map[string]interface{}) error {
	return Validate(rec, SchemaCNAPublished)
}

// loadSchema compiles the latest bundled version of the named schema, once.
func loadSchema(name SchemaName) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	prefix, ok := schemaPrefixes[name]
	if !ok {
		return nil, xerrors.Errorf("unknown schema name: %d", int(name))
	}
	path, err := latestSchemaFile(prefix)
	if err != nil {
		return nil, err
	}
	data, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("unable to read %s: %w", path, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, xerrors.Errorf("unable to compile %s: %w", path, err)
	}
	compiled[name] = schema
	return schema, nil
}

// latestSchemaFile picks the highest schema version available for a prefix.
func latestSchemaFile(prefix string) (string, error) {
	matches, err := fs.Glob(schemaFS, "schemas/"+prefix+"_*.json")
	if err != nil {
		return "", xerrors.Errorf("unable to list %s schemas: %w", prefix, err)
	}
	if len(matches) == 0 {
		return "", xerrors.Errorf("no bundled schema found for %s", prefix)
	}

	best := ""
	var bestVersion *version.Version
	for _, match := range matches {
		raw := strings.TrimSuffix(strings.TrimPrefix(match, "schemas/"+prefix+"_"), ".json")
		v, err := version.NewVersion(raw)
		if err != nil {
			return "", xerrors.Errorf("unable to parse schema version %q: %w", raw, err)
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best = match
			bestVersion = v
		}
	}
	return best, nil
}
