// Package brand implements brand management.
//
// A brand is the client identity the system mails on behalf of: sender
// address, default subject and tone, and free-text style notes for copy
// generation. The slug is the external lookup key used by lead ingestion.
//
// Repository implementations live in repository/postgres/.
package brand
