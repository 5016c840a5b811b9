// Package config reads the register's settings from an optional env file and
// the environment, the environment taking precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/log"
)

const (
	InventoryDriverMemory = "memory"
	InventoryDriverSqlite = "sqlite"

	BackOfficeModeDirect   = "direct"
	BackOfficeModeTemporal = "temporal"
)

type Config struct {
	App        AppConfig
	Output     OutputConfig
	Inventory  InventoryConfig
	Discounts  map[string]decimal.Decimal
	BackOffice BackOfficeConfig
}

type AppConfig struct {
	Name      string
	Env       string
	StoreName string
	LogLevel  string
}

type OutputConfig struct {
	ErrorLogFile string
	RevenueFile  string
	ReceiptWidth int
}

type InventoryConfig struct {
	Driver    string
	DSN       string
	CacheSize int
	OutageIds []string
}

type BackOfficeConfig struct {
	Mode     string
	Temporal TemporalConfig
}

type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

type InvalidSettingError struct {
	Key   string
	Value string
}

func (e InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Key)
}

// Load reads path when it is not empty. A missing or unreadable file is only a
// warning: the defaults and the environment still apply.
func Load(path string, logger log.Logger) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("Config file not read, using environment variables", "Path", path, "Error", err)
		}
	}

	v.SetDefault("APP_NAME", "pos-register")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_NAME", "POS Register")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ERROR_LOG_FILE", "pos-application-log.txt")
	v.SetDefault("REVENUE_FILE", "totalRevenue.txt")
	v.SetDefault("RECEIPT_WIDTH", 40)
	v.SetDefault("INVENTORY_DRIVER", InventoryDriverMemory)
	v.SetDefault("INVENTORY_DSN", "file:pos-register.db")
	v.SetDefault("CATALOG_CACHE_SIZE", 128)
	v.SetDefault("INVENTORY_OUTAGE_IDS", "frozen-peas")
	v.SetDefault("DISCOUNTS", "1234567890=0.10,9876543210=0.15")
	v.SetDefault("BACKOFFICE_MODE", BackOfficeModeDirect)
	v.SetDefault("TEMPORAL_HOST_PORT", "localhost:7233")
	v.SetDefault("TEMPORAL_NAMESPACE", "default")
	v.SetDefault("TEMPORAL_TASK_QUEUE", "pos-backoffice")

	driver := v.GetString("INVENTORY_DRIVER")
	if driver != InventoryDriverMemory && driver != InventoryDriverSqlite {
		return nil, InvalidSettingError{Key: "INVENTORY_DRIVER", Value: driver}
	}
	mode := v.GetString("BACKOFFICE_MODE")
	if mode != BackOfficeModeDirect && mode != BackOfficeModeTemporal {
		return nil, InvalidSettingError{Key: "BACKOFFICE_MODE", Value: mode}
	}
	discounts, err := ParseDiscounts(v.GetString("DISCOUNTS"))
	if err != nil {
		return nil, err
	}

	return &Config{
		App: AppConfig{
			Name:      v.GetString("APP_NAME"),
			Env:       v.GetString("APP_ENV"),
			StoreName: v.GetString("STORE_NAME"),
			LogLevel:  v.GetString("LOG_LEVEL"),
		},
		Output: OutputConfig{
			ErrorLogFile: v.GetString("ERROR_LOG_FILE"),
			RevenueFile:  v.GetString("REVENUE_FILE"),
			ReceiptWidth: v.GetInt("RECEIPT_WIDTH"),
		},
		Inventory: InventoryConfig{
			Driver:    driver,
			DSN:       v.GetString("INVENTORY_DSN"),
			CacheSize: v.GetInt("CATALOG_CACHE_SIZE"),
			OutageIds: splitList(v.GetString("INVENTORY_OUTAGE_IDS")),
		},
		Discounts: discounts,
		BackOffice: BackOfficeConfig{
			Mode: mode,
			Temporal: TemporalConfig{
				HostPort:  v.GetString("TEMPORAL_HOST_PORT"),
				Namespace: v.GetString("TEMPORAL_NAMESPACE"),
				TaskQueue: v.GetString("TEMPORAL_TASK_QUEUE"),
			},
		},
	}, nil
}

func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseDiscounts reads "customer=rate,..." where rate is a fraction such as 0.10.
func ParseDiscounts(value string) (map[string]decimal.Decimal, error) {
	discounts := make(map[string]decimal.Decimal)
	for _, entry := range splitList(value) {
		customerId, rateText, ok := strings.Cut(entry, "=")
		customerId = strings.TrimSpace(customerId)
		if !ok || customerId == "" {
			return nil, InvalidSettingError{Key: "DISCOUNTS", Value: entry}
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rateText))
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, InvalidSettingError{Key: "DISCOUNTS", Value: entry}
		}
		discounts[customerId] = rate
	}
	return discounts, nil
}
