package valkeystore

import (
	"fmt"
	"os"
	"strings"

	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/valkeycompat"
	"go.uber.org/zap"

	"batch-transcribe-api/utils"
)

// Client is nil until InitValkey succeeds; callers must treat a nil
// client as "eventing disabled".
var Client valkeycompat.Cmdable

func InitValkey(logger *zap.Logger) error {
	host := utils.MustGetEnv("VALKEY_HOST")
	port := utils.GetEnvOrDefault("VALKEY_PORT", "6379")

	option := valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", host, port)},
	}

	if os.Getenv("VALKEY_USE_SENTINEL") == "true" {
		sentinels := splitCSV(os.Getenv("VALKEY_SENTINEL_ADDRESS"))
		if len(sentinels) == 0 {
			return fmt.Errorf("VALKEY_USE_SENTINEL is true but VALKEY_SENTINEL_ADDRESS is not set")
		}
		option.InitAddress = sentinels
		option.Sentinel = valkey.SentinelOption{
			MasterSet: utils.GetEnvOrDefault("VALKEY_SENTINEL_MASTER_NAME", "mymaster"),
		}
		logger.Info("Initializing cache service with sentinel configuration")
	} else {
		logger.Info("Initializing cache service")
	}

	vk, err := valkey.NewClient(option)
	if err != nil {
		return fmt.Errorf("connect to valkey: %w", err)
	}

	Client = valkeycompat.NewAdapter(vk)
	logger.Info("Cache service initialized successfully")
	return nil
}

func splitCSV(csv string) []string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
