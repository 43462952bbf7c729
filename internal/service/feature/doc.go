// Package feature implements the shared feature catalog and its per-brand
// attachments.
//
// Features are reusable product capabilities; a BrandFeature attachment adds
// brand-specific asset metadata (label, URL, call to action). Campaigns pick
// from a brand's attachments, never from the catalog directly.
package feature
