package cverecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord(adp ...interface{}) map[string]interface{} {
	rec := map[string]interface{}{
		"dataType":    "CVE_RECORD",
		"dataVersion": "5.1",
		"cveMetadata": map[string]interface{}{
			"cveId": "CVE-2024-1234",
			"state": "PUBLISHED",
		},
		"containers": map[string]interface{}{
			"cna": map[string]interface{}{
				"title": "test vulnerability",
			},
		},
	}
	if adp != nil {
		rec["containers"].(map[string]interface{})["adp"] = adp
	}
	return rec
}

func TestIsFullRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want bool
	}{
		{
			name: "full record",
			rec:  fullRecord(),
			want: true,
		},
		{
			name: "bare container",
			rec:  map[string]interface{}{"title": "test"},
			want: false,
		},
		{
			name: "wrong dataType value",
			rec:  map[string]interface{}{"dataType": "CVE_RECORD_V4"},
			want: false,
		},
		{
			name: "non-string dataType",
			rec:  map[string]interface{}{"dataType": 5},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFullRecord(tt.rec))
		})
	}
}

func TestExtractCNAContainer(t *testing.T) {
	tests := []struct {
		name    string
		rec     map[string]interface{}
		want    map[string]interface{}
		wantErr string
	}{
		{
			name: "full record",
			rec:  fullRecord(),
			want: map[string]interface{}{"title": "test vulnerability"},
		},
		{
			name: "bare container is returned as is",
			rec:  map[string]interface{}{"title": "already a CNA container"},
			want: map[string]interface{}{"title": "already a CNA container"},
		},
		{
			name:    "full record without containers",
			rec:     map[string]interface{}{"dataType": "CVE_RECORD"},
			wantErr: "no containers object",
		},
		{
			name: "full record without CNA container",
			rec: map[string]interface{}{
				"dataType":   "CVE_RECORD",
				"containers": map[string]interface{}{},
			},
			wantErr: "no CNA container",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractCNAContainer(tt.rec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCNAContainerIdempotent(t *testing.T) {
	rec := fullRecord()

	once, err := ExtractCNAContainer(rec)
	require.NoError(t, err)
	twice, err := ExtractCNAContainer(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	// The original record must be left alone.
	assert.Equal(t, fullRecord(), rec)
}

func TestExtractADPContainer(t *testing.T) {
	adpContainer := map[string]interface{}{
		"providerMetadata": map[string]interface{}{"orgId": "x"},
		"title":            "adp data",
	}

	tests := []struct {
		name    string
		rec     map[string]interface{}
		want    map[string]interface{}
		wantErr error
	}{
		{
			name: "full record with one ADP container",
			rec:  fullRecord(adpContainer),
			want: adpContainer,
		},
		{
			name: "bare container is returned as is",
			rec:  adpContainer,
			want: adpContainer,
		},
		{
			name:    "full record with two ADP containers",
			rec:     fullRecord(adpContainer, map[string]interface{}{"title": "second"}),
			wantErr: ErrMultipleADPContainers,
		},
		{
			name:    "full record with empty ADP list",
			rec:     fullRecord([]interface{}{}...),
			wantErr: ErrNoADPContainer,
		},
		{
			name:    "full record without ADP containers",
			rec:     fullRecord(),
			wantErr: ErrNoADPContainer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractADPContainer(tt.rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractADPContainerMalformedEntry(t *testing.T) {
	rec := fullRecord("not an object")
	_, err := ExtractADPContainer(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")
}
