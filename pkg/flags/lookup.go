package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aleksandradimitrov/wikipedia-task/internal/config"
)

// AddLookup registers the flags that shape remote link lookups as persistent
// flags of cmd. Defaults come from the loaded configuration and every flag
// is bound to its viper key.
func AddLookup(cmd *cobra.Command, c *config.Config) {
	f := cmd.PersistentFlags()

	f.String("base-url", c.BaseURL, "Base URL of the wiki to crawl")
	f.String("source", c.Source, "Where links come from: html or api")
	f.IntP("limit", "l", c.NeighborLimit, "Maximum number of links followed per page")
	f.Float64("rate", c.RateLimit, "Maximum requests per second, 0 for no limit")
	f.Int("burst", c.Burst, "Requests allowed at once before the rate limit applies")
	f.Duration("timeout", c.Timeout, "Timeout of a single HTTP request")
	f.String("user-agent", c.UserAgent, "User-Agent header sent with every request")
	f.Int("cache-size", c.CacheSize, "Pages whose links are kept in memory, 0 disables the cache")
	f.String("log-level", c.LogLevel, "Log level: debug, info, warn or error")

	bind(cmd, map[string]string{
		"base-url":   config.KeyBaseURL,
		"source":     config.KeySource,
		"limit":      config.KeyNeighborLimit,
		"rate":       config.KeyRateLimit,
		"burst":      config.KeyBurst,
		"timeout":    config.KeyTimeout,
		"user-agent": config.KeyUserAgent,
		"cache-size": config.KeyCacheSize,
		"log-level":  config.KeyLogLevel,
	})
}

func bind(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			flag = cmd.Flags().Lookup(name)
		}
		viper.BindPFlag(key, flag)
	}
}
