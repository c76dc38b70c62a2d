package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"bakkey/internal/client"
	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/logging"
	backupkeysvc "bakkey/internal/services/backupkey"
	identitysvc "bakkey/internal/services/identity"
	keyringsvc "bakkey/internal/services/keyring"
	"bakkey/internal/store"
)

// Wire bundles the stores, services and clients built from a Config.
type Wire struct {
	Log      *logrus.Logger
	Random   *crypto.RandomSource
	Backups  *backupkeysvc.Service
	Keyring  *keyringsvc.Service
	Identity *identitysvc.Service
	Daemon   domain.DaemonClient
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}

	// File-based stores
	identityStore := store.NewIdentityFileStore(cfg.Home)
	keyringStore := store.NewKeyringFileStore(cfg.Home)

	if !cfg.StrictRandom {
		log.Warn("random.strict is off: key generation may use an INSECURE random source")
	}
	random := crypto.NewRandomSource(cfg.StrictRandom, log)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// High-level services
	backups := backupkeysvc.New(
		crypto.AgeDeriver{},
		random,
		log,
		backupkeysvc.WithChecksum(cfg.VerifyChecksum),
	)
	keyring := keyringsvc.New(keyringStore, backups, log)
	identity := identitysvc.New(identityStore, random, log)

	return &Wire{
		Log:      log,
		Random:   random,
		Backups:  backups,
		Keyring:  keyring,
		Identity: identity,
		Daemon:   client.NewHTTP(cfg.ServerURL, httpClient),
		HTTP:     httpClient,
	}, nil
}
