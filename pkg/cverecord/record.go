// Package cverecord normalizes and validates CVE v5 record data before it is
// submitted to CVE Services. Callers may hand it either a bare CNA/ADP
// container or a full v5 record; the package extracts the relevant container,
// fills in missing provider/generator metadata and checks the result against
// the official JSON schemas.
package cverecord

import (
	"golang.org/x/xerrors"
)

// Version is the library version reported in generated records.
const Version = "1.1.0"

// RecordDataType is the value of the dataType field that marks a JSON object
// as a full v5 CVE record rather than a bare container.
const RecordDataType = "CVE_RECORD"

const (
	dataTypeKey   = "dataType"
	containersKey = "containers"
	cnaKey        = "cna"
	adpKey        = "adp"
)

var (
	// ErrMultipleADPContainers is returned when a full record holds more than
	// one ADP container and a single one was requested. The caller has to
	// pick the container manually in that case.
	ErrMultipleADPContainers = xerrors.New("multiple ADP containers present in CVE record")

	// ErrNoADPContainer is returned when a full record holds no ADP container
	// at all but one was requested.
	ErrNoADPContainer = xerrors.New("no ADP container present in CVE record")
)

// IsFullRecord reports whether rec is a full v5 CVE record. Detection is an
// explicit tag check on the dataType field; anything else is treated as a
// bare container.
func IsFullRecord(rec map[string]interface{}) bool {
	dt, ok := rec[dataTypeKey].(string)
	return ok && dt == RecordDataType
}

// ExtractCNAContainer returns the CNA container of a full v5 record. If rec
// is not a full record it is assumed to be a CNA container already and is
// returned as is. The input is never mutated.
func ExtractCNAContainer(rec map[string]interface{}) (map[string]interface{}, error) {
	if !IsFullRecord(rec) {
		return rec, nil
	}
	containers, ok := rec[containersKey].(map[string]interface{})
	if !ok {
		return nil, xerrors.New("full CVE record has no containers object")
	}
	cna, ok := containers[cnaKey].(map[string]interface{})
	if !ok {
		return nil, xerrors.New("full CVE record has no CNA container")
	}
	return cna, nil
}

// ExtractADPContainer returns the single ADP container of a full v5 record.
// If rec is not a full record it is assumed to be an ADP container already
// and is returned as is.
//
// A record carrying more than one ADP container fails with
// ErrMultipleADPContainers; a record carrying none fails with
// ErrNoADPContainer. The input is never mutated.
func ExtractADPContainer(rec map[string]interface{}) (map[string]interface{}, error) {
	if !IsFullRecord(rec) {
		return rec, nil
	}
	containers, ok := rec[containersKey].(map[string]interface{})
	if !ok {
		return nil, xerrors.New("full CVE record has no containers object")
	}
	adp, ok := containers[adpKey].([]interface{})
	if !ok || len(adp) == 0 {
		return nil, ErrNoADPContainer
	}
	if len(adp) > 1 {
		return nil, ErrMultipleADPContainers
	}
	container, ok := adp[0].(map[string]interface{})
	if !ok {
		return nil, xerrors.New("ADP container is not a JSON object")
	}
	return container, nil
}
