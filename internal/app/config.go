package app

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BAKKEY_SERVER_URL.
const EnvPrefix = "BAKKEY"

// Config keys shared by the CLI flags, the config file and the environment.
const (
	KeyHome           = "home"
	KeyPassphrase     = "passphrase"
	KeyServerURL      = "server.url"
	KeyServerListen   = "server.listen"
	KeyRandomStrict   = "random.strict"
	KeyMnemonicCheck  = "mnemonic.checksum"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyRateLimitRPS   = "ratelimit.rps"
	KeyRateLimitBurst = "ratelimit.burst"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string       // state directory, e.g. $HOME/.bakkey
	Passphrase     string       // seals the panel identity (bakkeyd only)
	ServerURL      string       // bakkeyd base URL, e.g. http://127.0.0.1:8780
	ListenAddr     string       // bakkeyd listen address
	StrictRandom   bool         // refuse to fall back to math/rand
	VerifyChecksum bool         // reject phrases with a wrong BIP39 checksum
	LogLevel       string       // logrus level name
	LogFormat      string       // text or json
	RateLimitRPS   float64      // per-IP requests per second; 0 disables
	RateLimitBurst int          // per-IP bucket size
	HTTP           *http.Client // optional; defaults to http.DefaultClient
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHome, "")
	v.SetDefault(KeyServerURL, "http://127.0.0.1:8780")
	v.SetDefault(KeyServerListen, "127.0.0.1:8780")
	v.SetDefault(KeyRandomStrict, true)
	v.SetDefault(KeyMnemonicCheck, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyRateLimitRPS, 1.0)
	v.SetDefault(KeyRateLimitBurst, 5)
}

// ReadConfig points v at cfgFile, or at $HOME/.bakkey.yaml and ./.bakkey.yaml
// when cfgFile is empty, binds BAKKEY_* environment variables and reads the
// file. A missing default config file is not an error.
func ReadConfig(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bakkey")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// ConfigFrom builds a Config from v, resolving the default home directory.
func ConfigFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		Home:           v.GetString(KeyHome),
		Passphrase:     v.GetString(KeyPassphrase),
		ServerURL:      v.GetString(KeyServerURL),
		ListenAddr:     v.GetString(KeyServerListen),
		StrictRandom:   v.GetBool(KeyRandomStrict),
		VerifyChecksum: v.GetBool(KeyMnemonicCheck),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		RateLimitRPS:   v.GetFloat64(KeyRateLimitRPS),
		RateLimitBurst: v.GetInt(KeyRateLimitBurst),
	}
	if cfg.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Home = filepath.Join(dir, ".bakkey")
	}
	return cfg, nil
}
