// Package dispatch delivers generated emails to their leads. The gateway
// abstraction keeps the pipeline independent of the delivery provider; the
// shipped implementation uses the AWS SES v2 API. An unconfigured gateway
// reports sends as skipped rather than failing, so environments without
// credentials can still exercise the full generation pipeline.
package dispatch
