// Package lead implements lead ingestion and lookup.
//
// Leads arrive keyed by brand slug, the one external identifier signup forms
// carry. A lead record is immutable after ingest; the generation pipeline
// runs against it but never mutates it.
package lead
