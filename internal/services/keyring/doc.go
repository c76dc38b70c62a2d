// Package keyring tracks the backup recipients registered with a panel.
//
// Each record moves through the lifecycle unsaved -> saved, or is created
// directly as saved or imported:
//   - unsaved: generated and shown to the user, phrase not yet re-entered
//   - saved: the re-entered phrase reproduced the recipient
//   - imported: a recipient pasted without any phrase
//
// Export renders saved and imported keys as the treasury [backup] section.
package keyring
