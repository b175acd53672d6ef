package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"studyplan/internal/calendar"
)

const (
	AppDirName            = "studyplan"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "plan.db"
	DefaultLogName        = "planner.log"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	PrevMonth  string `toml:"prev_month"`
	NextMonth  string `toml:"next_month"`
	Today      string `toml:"today"`
	Open       string `toml:"open"`
	Back       string `toml:"back"`
	AddSubject string `toml:"add_subject"`
	AddTopic   string `toml:"add_topic"`
	Toggle     string `toml:"toggle"`
	Edit       string `toml:"edit"`
	Delete     string `toml:"delete"`
	Stats      string `toml:"stats"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
}

type Config struct {
	DBPath      string `toml:"db_path"`
	ExamDate    string `toml:"exam_date"`
	ExamLabel   string `toml:"exam_label"`
	WeekStart   string `toml:"week_start"`
	StatsLocale string `toml:"stats_locale"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogPath     string `toml:"log_path"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location, falling back to
// the working directory when no user config directory is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first when the
// file does not exist. Relative db and log paths are resolved against the config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.resolve(path), nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ExamDate) != "" {
		if _, err := calendar.ParseKey(c.ExamDate); err != nil {
			errs = append(errs, fmt.Errorf("exam_date: %w", err))
		}
	}
	if _, err := calendar.ParseWeekday(c.WeekStart); err != nil {
		errs = append(errs, fmt.Errorf("week_start: %w", err))
	}
	if _, err := language.Parse(c.StatsLocale); err != nil {
		errs = append(errs, fmt.Errorf("stats_locale: %w", err))
	}
	return errors.Join(errs...)
}

// Exam returns the configured exam day, if any.
func (c Config) Exam() (time.Time, bool) {
	if strings.TrimSpace(c.ExamDate) == "" {
		return time.Time{}, false
	}
	t, err := calendar.ParseKey(c.ExamDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c Config) WeekStartDay() time.Weekday {
	d, err := calendar.ParseWeekday(c.WeekStart)
	if err != nil {
		return time.Monday
	}
	return d
}

func (c Config) Locale() language.Tag {
	tag, err := language.Parse(c.StatsLocale)
	if err != nil {
		return language.Turkish
	}
	return tag
}

func (c Config) resolve(path string) Config {
	dir := filepath.Dir(path)
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:      DefaultDBName,
		ExamDate:    "2026-09-06",
		ExamLabel:   "KPSS 2026",
		WeekStart:   "monday",
		StatsLocale: "tr",
		LogLevel:    "info",
		LogFormat:   "text",
		LogPath:     DefaultLogName,
		Keys: Keymap{
			Quit:       "q",
			Up:         "k",
			Down:       "j",
			PrevMonth:  "[",
			NextMonth:  "]",
			Today:      "t",
			Open:       "enter",
			Back:       "esc",
			AddSubject: "a",
			AddTopic:   "n",
			Toggle:     " ",
			Edit:       "e",
			Delete:     "d",
			Stats:      "s",
			Confirm:    "enter",
			Cancel:     "esc",
		},
	}
}
