// Package domain contains the core data records of the konto-ingest
// pipeline: the source manifest, Bronze snapshots, Silver records for
// Norwegian legal and accounting material, and Gold training samples.
//
// Records are passive and carry no behaviour beyond shape validation.
// They have no dependencies on adapters or services.
package domain
