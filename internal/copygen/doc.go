// Package copygen produces the short marketing copy embedded in generated
// confirmation emails. The primary implementation calls AWS Bedrock; when
// the provider is not configured the package falls back to a deterministic
// locally-built summary so generation never blocks on missing credentials.
package copygen
