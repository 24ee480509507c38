package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-matcher/internal/kv"
	"github.com/spigell/job-matcher/internal/listing"
	"github.com/spigell/job-matcher/internal/preferences"
)

const (
	app = "job-matcher"
)

type Config struct {
	Store    *StoreConfig `mapstructure:"store"`
	Listings string       `mapstructure:"listings"`
	Rank     *RankConfig  `mapstructure:"rank"`
}

type StoreConfig struct {
	Backend string       `mapstructure:"backend"`
	Path    string       `mapstructure:"path"`
	Key     string       `mapstructure:"key"`
	Redis   *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	URLFile string `mapstructure:"url-file"`
}

type RankConfig struct {
	MinimumScore   int      `mapstructure:"minimum-score"`
	MaxAgeDays     int      `mapstructure:"max-age-days"`
	ExcludeSources []string `mapstructure:"exclude-sources"`
	SortBy         string   `mapstructure:"sort-by"`
	Limit          int      `mapstructure:"limit"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-matcher scores job listings against your saved preferences",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("JOB_MATCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("store.redis.url-file", redisURLFileEnv); err != nil {
		log.Fatalf("binding JOB_MATCHER_REDIS_URL_FILE environment variable: %v", err)
	}

	viper.SetDefault("store.backend", kv.BackendFile)
	viper.SetDefault("store.key", preferences.DefaultKey)
	viper.SetDefault("rank.sort-by", string(listing.SortByScore))

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("store", "", "preference store backend: file, sqlite, redis or memory")
	rootCmd.PersistentFlags().String("store-path", "", "path of the file or sqlite store")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store-path"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default or a flag, so a missing default config file is fine.
	// An explicit or broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	if config.Store.Redis == nil {
		config.Store.Redis = &RedisConfig{}
	}
	if config.Rank == nil {
		config.Rank = &RankConfig{}
	}

	return config, nil
}
