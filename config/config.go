// Package config is responsible for setting the program config from the
// config file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/grit-cli/grit/internal/osutil"
	"github.com/grit-cli/grit/internal/timeutil"
)

const Version = "v0.3.0"

const (
	configFirstRunMonth  = "first_run_month"
	configNotify         = "notify"
	configDarkTheme      = "dark_theme"
	configTwentyFourHour = "24hr_clock"
	configSessionCmd     = "session_cmd"
)

var (
	configDir      = "grit"
	configFileName = "config.yml"
	logFileName    = "grit.log"
	profileName    = "profile"
)

var errInitFailed = errors.New(
	"unable to initialise grit settings from the configuration file",
)

// Config represents the program configuration derived from the config file
// and the data directory layout.
type Config struct {
	PathToConfig string
	DataDir      string
	LogFile      string
	// FirstRunMonth is the month the application was first used. Dates
	// before it are rejected by the argument grammar.
	FirstRunMonth  timeutil.Month
	SessionCmd     string
	Notify         bool
	DarkTheme      bool
	TwentyFourHour bool
}

var (
	cfg  *Config
	once sync.Once
)

func init() {
	gritEnv := strings.TrimSpace(os.Getenv("GRIT_ENV"))
	if gritEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", gritEnv)
		logFileName = fmt.Sprintf("grit_%s.log", gritEnv)
	}
}

// ClockFormat returns the time layout for rendering session instants.
func (c *Config) ClockFormat() string {
	if c.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

func setDefaults() {
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(configTwentyFourHour, true)
	viper.SetDefault(configSessionCmd, "")
	viper.SetDefault(
		configFirstRunMonth,
		timeutil.MonthOf(time.Now()).String(),
	)
}

func initConfig() error {
	viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
	viper.SetConfigType("yaml")

	pathToConfig, err := xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		return err
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		return err
	}

	cfg = &Config{
		PathToConfig: pathToConfig,
		DataDir:      dataDir,
		LogFile:      filepath.Join(dataDir, "log", logFileName),
	}

	viper.AddConfigPath(filepath.Dir(pathToConfig))
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			// First run: persist the defaults, pinning first_run_month to
			// the current month for good.
			if err := viper.WriteConfigAs(pathToConfig); err != nil {
				return err
			}
		} else {
			return err
		}
	}

	cfg.Notify = viper.GetBool(configNotify)
	cfg.DarkTheme = viper.GetBool(configDarkTheme)
	cfg.TwentyFourHour = viper.GetBool(configTwentyFourHour)
	cfg.SessionCmd = viper.GetString(configSessionCmd)

	firstRun, err := timeutil.ParseMonth(viper.GetString(configFirstRunMonth))
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", configFirstRunMonth, err)
	}

	cfg.FirstRunMonth = firstRun

	return nil
}

// Get initializes and returns the program configuration. Initialization
// happens just once no matter how many times it is called.
func Get() *Config {
	once.Do(func() {
		err := initConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}
	})

	return cfg
}

// InitLogging routes slog output to a rotating file under the data dir.
func InitLogging(c *Config) {
	w := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
}

// DisplayName returns the saved display name, or "" if none is set.
func DisplayName(c *Config) string {
	b, err := os.ReadFile(filepath.Join(c.DataDir, profileName))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}

// SetDisplayName saves the display name to the profile file.
func SetDisplayName(c *Config, name string) error {
	path := filepath.Join(c.DataDir, profileName)

	return os.WriteFile(path, []byte(name+"\n"), osutil.FilePermission)
}
