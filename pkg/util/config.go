package util

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	SetConfigDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("data.safepoints_file", "SAFEPOINTS_PATH")

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// defaults + env only
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetConfigDefaults() {
	viper.SetDefault("data.segments_file", "./data/segments_safe_min_dedup.csv")
	viper.SetDefault("data.graph_file", "./data/segments_graph_full.csv")
	viper.SetDefault("data.provides_stable_ids", false)
	viper.SetDefault("data.geometry_file", "./data/segments_safe_min_dedup.geojson")
	viper.SetDefault("data.safepoints_file", "")

	viper.SetDefault("routing.min_component_size", 2)
	viper.SetDefault("routing.default_cost_function", "combined")
	viper.SetDefault("routing.graph_cache_size", 8)
	viper.SetDefault("routing.utm_zone", 51)
	viper.SetDefault("routing.utm_northern", true)
	viper.SetDefault("routing.evacuation_center_limit", 500)

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("API_RATE_LIMIT", 50.0)
	viper.SetDefault("API_RATE_BURST", 100)
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "5s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "10s")
}
