// 包 config：从环境变量（可选 .env 文件）装配运行配置
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shodan-inspector/internal/shodan"
)

type Config struct {
	Addr            string
	StaticDir       string
	UpstreamBase    string
	UpstreamTimeout time.Duration
	CORSOrigins     []string

	TLSEnable         bool
	TLSCertPath       string
	TLSKeyPath        string
	TLSRedirectEnable bool
	TLSRedirectAddr   string
}

// LoadDotEnv：加载 .env 与 data/env/.env，文件不存在时忽略
// 约束：已存在的环境变量不会被覆盖
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
}

// Load：读取环境变量并填充默认值
func Load() (*Config, error) {
	c := &Config{
		Addr:              envOr("ADDR", ":8000"),
		StaticDir:         envOr("STATIC_DIR", filepath.Join("web", "static")),
		UpstreamBase:      envOr("SHODAN_API_BASE", shodan.DefaultBase),
		UpstreamTimeout:   shodan.DefaultTimeout,
		TLSEnable:         os.Getenv("TLS_ENABLE") == "true",
		TLSCertPath:       envOr("TLS_CERT_PATH", filepath.Join("data", "certs", "server.crt")),
		TLSKeyPath:        envOr("TLS_KEY_PATH", filepath.Join("data", "certs", "server.key")),
		TLSRedirectEnable: os.Getenv("TLS_REDIRECT_ENABLE") == "true",
		TLSRedirectAddr:   envOr("TLS_REDIRECT_ADDR", ":80"),
	}
	if s := os.Getenv("UPSTREAM_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("UPSTREAM_TIMEOUT: must be positive, got %s", d)
		}
		c.UpstreamTimeout = d
	}
	if s := strings.TrimSpace(os.Getenv("CORS_ORIGIN")); s != "" {
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	return c, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
