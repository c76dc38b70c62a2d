// Command bakkeyd serves the backup-key HTTP API used by the treasury panel.
//
// HTTP API
//
//	GET /v1/health
//	    Liveness probe, {"status":"ok"}.
//
//	GET /v1/panel/recipient
//	    The daemon's age transport recipient. Clients encrypt recovery phrases
//	    to it before calling restore.
//
//	POST /v1/backup-keys/generate[?track=true]
//	    A fresh {mnemonic, age_recipient}. With track=true the key is also
//	    kept in the keyring as unsaved and key_id is returned.
//
//	POST /v1/backup-keys/recover {"mnemonic": "..."}
//	    The age recipient for a phrase.
//
//	POST /v1/backup-keys/validate {"age_recipient": "..."}
//	    Structural recipient check, {"valid": bool}.
//
//	POST /v1/backup-keys/restore {"encrypted_mnemonic_phrase": "<base64 age>"}
//	    Decrypt the phrase with the panel identity and report which registered
//	    key, if any, it belongs to.
//
//	GET    /v1/backup-keys
//	POST   /v1/backup-keys {"key", "id"?, "mnemonic"?}
//	POST   /v1/backup-keys/{id}/confirm {"mnemonic": "..."}
//	DELETE /v1/backup-keys/{id}
//	GET    /v1/backup-keys/export?format=json|toml|yaml
//	    Keyring management.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - The panel identity is sealed under the passphrase in the home directory
//     and created on first start.
//   - Errors are JSON {code, status, message}; internal causes are logged,
//     never returned.
//   - recover, restore, register and confirm are rate limited per client IP
//     when ratelimit.rps is set.
//   - The default listen address is 127.0.0.1:8780.
package main
