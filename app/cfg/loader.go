package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const appName = "stellarpulse"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	Store     string `long:"store" env:"STORE" default:"json" choice:"json" choice:"sqlite" choice:"redis" description:"Document store backend"`
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address for the redis store"`
	DataDir   string `long:"data-dir" env:"DATA_DIR" description:"Directory for the item and subscription documents (default: XDG data home)"`
	CacheFile string `long:"cache-file" env:"CACHE_FILE" description:"Exact file path of the last query cache (default: XDG cache home)"`

	// Application configuration
	ConfigFile        string `long:"config" env:"CONFIG_FILE" default:"./sources.yml" description:"Sources and keywords configuration file"`
	ReportsDir        string `long:"reports-dir" env:"REPORTS_DIR" description:"Directory for generated reports (default: <data-dir>/reports)"`
	Port              string `long:"port" env:"PORT" description:"HTTP server port (default: settings.web_port)"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://pulse.example.com)"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"3600" description:"Collect interval in seconds for serve mode"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for mutating endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"StellarPulse/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Shanghai)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// NewParser returns a parser for the global options. Commands added to it run
// after the configuration has been resolved and published through Get.
func NewParser() *flags.Parser {
	raw := &rawCfg{}
	parser := flags.NewParser(raw, flags.Default)

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		cfg, err := resolve(raw)
		if err != nil {
			return err
		}
		globalCfg = cfg

		if command == nil {
			return nil
		}
		return command.Execute(args)
	}

	return parser
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.NewParser().Parse() first")
	}
	return globalCfg
}

func resolve(raw *rawCfg) (*Cfg, error) {
	cfg := &Cfg{
		Store:             raw.Store,
		RedisAddr:         raw.RedisAddr,
		DataDir:           raw.DataDir,
		CacheFile:         raw.CacheFile,
		ConfigFile:        raw.ConfigFile,
		ReportsDir:        raw.ReportsDir,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("failed to resolve directories: %w", err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	applyLogLevel(cfg.Debug)

	return cfg, nil
}

func applyDefaults(cfg *Cfg) error {
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdg.DataHome, appName)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	if cfg.ReportsDir == "" {
		cfg.ReportsDir = filepath.Join(cfg.DataDir, "reports")
	}

	if cfg.CacheFile == "" {
		path, err := xdg.CacheFile(filepath.Join(appName, "last_query.json"))
		if err != nil {
			return err
		}
		cfg.CacheFile = path
	}

	if cfg.SchedulerInterval <= 0 {
		cfg.SchedulerInterval = 3600
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

func applyLogLevel(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
