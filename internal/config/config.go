package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	StripeSecretKey string // 決済プロバイダのシークレットキー（サーバー側のみ）
	AppURL          string // フロントURL（success/cancelの戻り先・CORS）

	RedisAddr         string        // カタログキャッシュ用Redis
	CatalogRevalidate time.Duration // カタログ再検証間隔

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		AppURL:          os.Getenv("APP_URL"),

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.AppURL == "" {
		return Config{}, fmt.Errorf("APP_URL is required")
	}

	// 再検証間隔（秒・省略時3600）
	revalidate := 3600
	if v := os.Getenv("CATALOG_REVALIDATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("CATALOG_REVALIDATE must be positive number")
		}
		revalidate = n
	}
	cfg.CatalogRevalidate = time.Duration(revalidate) * time.Second

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
