// Package campaign implements campaign management and feature resolution.
//
// A campaign groups a brand's feature attachments for confirmation mailings,
// ordered by sort key with optional per-campaign highlight overrides. At
// most one campaign per brand is active; activation clears its siblings in
// the same database transaction. Feature resolution flattens a campaign's
// links into the renderer's and copy generator's input shape.
//
// Repository implementations live in repository/postgres/.
package campaign
