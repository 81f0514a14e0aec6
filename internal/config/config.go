package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode   string       `mapstructure:"mode"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Log    LogConfig    `mapstructure:"log"`
	Signal SignalConfig `mapstructure:"signal"`
	Rooms  RoomsConfig  `mapstructure:"rooms"`
	ICE    ICEConfig    `mapstructure:"ice"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	StaticPath      string        `mapstructure:"static_path"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SignalConfig struct {
	ReadLimit    int64         `mapstructure:"read_limit"`
	SendQueue    int           `mapstructure:"send_queue"`
	WriteWait    time.Duration `mapstructure:"write_wait"`
	PongWait     time.Duration `mapstructure:"pong_wait"`
	PingPeriod   time.Duration `mapstructure:"ping_period"`
	SlowPolicy   string        `mapstructure:"slow_policy"`
	SameRoomOnly bool          `mapstructure:"same_room_only"`
	RateLimit    int           `mapstructure:"rate_limit"`
	RateInterval time.Duration `mapstructure:"rate_interval"`
}

type RoomsConfig struct {
	MaxIDLength   int           `mapstructure:"max_id_length"`
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

type ICEConfig struct {
	Servers []ICEServer `mapstructure:"servers"`
}

const envPrefix = "WATCHPARTY"

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")

	v.SetDefault("http.port", 4000)
	v.SetDefault("http.static_path", "")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("signal.read_limit", 65536)
	v.SetDefault("signal.send_queue", 64)
	v.SetDefault("signal.write_wait", "10s")
	v.SetDefault("signal.pong_wait", "60s")
	v.SetDefault("signal.ping_period", "54s")
	v.SetDefault("signal.slow_policy", "drop")
	v.SetDefault("signal.same_room_only", false)
	v.SetDefault("signal.rate_limit", 0)
	v.SetDefault("signal.rate_interval", "1s")

	v.SetDefault("rooms.max_id_length", 128)
	v.SetDefault("rooms.idle_ttl", "0s")
	v.SetDefault("rooms.sweep_interval", "1m")

	v.SetDefault("ice.servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

// Flags registers the command line overrides understood by Load.
func Flags(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.String("config", "", "path to a YAML config file (default config/config.$CONFIG_ENV.yaml)")
	f.Int("port", 0, "HTTP listen port")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.Bool("version", false, "print version and exit")
	return f
}

// Load merges defaults, the config file, WATCHPARTY_* environment variables
// and flags, in increasing order of precedence. f may be nil.
func Load(f *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	fileName := ""
	if f != nil {
		fileName, _ = f.GetString("config")
	}
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(fileName)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("http.port", envPrefix+"_HTTP_PORT", "PORT"); err != nil {
		return nil, err
	}

	if f != nil {
		if err := v.BindPFlag("http.port", f.Lookup("port")); err != nil {
			return nil, err
		}
		if err := v.BindPFlag("log.level", f.Lookup("log-level")); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.HTTP.Port).Str("static", cfg.HTTP.StaticPath).Msg("config ready")
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	for _, o := range c.HTTP.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("http.allowed_origins: %q must be * or start with http:// or https://", o)
		}
	}
	if c.Signal.SendQueue <= 0 {
		return fmt.Errorf("signal.send_queue must be positive, got %d", c.Signal.SendQueue)
	}
	if c.Signal.ReadLimit <= 0 {
		return fmt.Errorf("signal.read_limit must be positive, got %d", c.Signal.ReadLimit)
	}
	if c.Signal.PingPeriod <= 0 || c.Signal.PingPeriod >= c.Signal.PongWait {
		return fmt.Errorf("signal.ping_period (%s) must be positive and below signal.pong_wait (%s)", c.Signal.PingPeriod, c.Signal.PongWait)
	}
	switch c.Signal.SlowPolicy {
	case "drop", "kick":
	default:
		return fmt.Errorf("signal.slow_policy must be drop or kick, got %q", c.Signal.SlowPolicy)
	}
	if c.Signal.RateLimit < 0 {
		return fmt.Errorf("signal.rate_limit must not be negative, got %d", c.Signal.RateLimit)
	}
	if c.Rooms.IdleTTL < 0 {
		return fmt.Errorf("rooms.idle_ttl must not be negative, got %s", c.Rooms.IdleTTL)
	}
	return nil
}
