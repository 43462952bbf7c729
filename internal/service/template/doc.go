// Package template implements brand email template management and selection.
//
// Selection picks the template a brand's emails render with: the default
// template when one is flagged, otherwise the most recently updated, and for
// brands with no templates at all a built-in template is synthesized and
// persisted on first use. At most one default per brand; flagging a default
// clears its siblings inside a single database transaction.
package template
