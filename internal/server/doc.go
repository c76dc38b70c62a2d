// Package server implements the bakkeyd HTTP API on fiber.
//
// HTTP API
//
//	GET /v1/health
//	    Liveness probe.
//
//	GET /v1/panel/recipient
//	    The panel's age recipient. Clients encrypt recovery phrases to it
//	    before calling restore.
//
//	POST /v1/backup-keys/generate[?track=true]
//	    A fresh 12-word phrase and its recipient. With track=true the
//	    recipient is added to the keyring as unsaved and key_id is returned.
//
//	POST /v1/backup-keys/recover { "mnemonic": "..." }
//	    The recipient a phrase derives. The BIP39 checksum is not verified
//	    unless the daemon runs with mnemonic.checksum enabled.
//
//	POST /v1/backup-keys/validate { "age_recipient": "..." }
//	    Structural check only.
//
//	POST /v1/backup-keys/restore { "encrypted_mnemonic_phrase": "<base64 age>" }
//	    Opens the phrase with the panel identity, derives its recipient and
//	    reports whether it is registered.
//
//	GET /v1/backup-keys
//	POST /v1/backup-keys { "key": "age1...", "id": "...", "mnemonic": "..." }
//	POST /v1/backup-keys/{id}/confirm { "mnemonic": "..." }
//	DELETE /v1/backup-keys/{id}
//	GET /v1/backup-keys/export?format=json|toml|yaml
//	    Keyring management. Registering with a mnemonic verifies it and stores
//	    the key as saved; without one the key is imported.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - Errors are JSON {code, status, message} with gRPC status codes.
//   - recover, restore, register and confirm are rate limited per client IP.
//   - An access log records method, path, remote, status, bytes and duration
//     for each request. Request bodies are never logged.
package server
