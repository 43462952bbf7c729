// Package generation orchestrates the email generation pipeline and
// dispatch of the results.
//
// Generation resolves the brand's active campaign to a feature list, runs
// the copy generator, selects the brand's template, renders, and persists
// exactly one GeneratedEmail row per invocation. Sending is a separate
// operation: it loads a draft, hands it to the dispatch gateway, and flips
// the row to sent only after the provider accepts it. A skipped dispatch
// leaves the draft untouched.
package generation
