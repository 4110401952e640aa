package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var allKeys = []string{
	"HTTP_ADDR", "SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	"CARTS_BASE_URL", "CARTS_LIMIT", "CARTS_TIMEOUT", "CARTS_CACHE_TTL", "REDIS_ADDR",
	"BREAKER_MAX_FAILURES", "BREAKER_OPEN_TIMEOUT",
	"DISPLAY_LOCALE", "DISPLAY_CURRENCY", "SEED_PRODUCTS", "OTEL_EXPORTER_ENDPOINT",
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.CartsBaseURL != "https://dummyjson.com" || c.CartsLimit != 50 {
		t.Fatalf("carts defaults: %+v", c)
	}
	if c.CartsTimeout != 5*time.Second || c.CartsCacheTTL != time.Minute {
		t.Fatalf("carts timing defaults")
	}
	if c.RedisAddr != "" || c.OTelEndpoint != "" {
		t.Fatalf("optional integrations should be off by default")
	}
	if c.BreakerMaxFailures != 5 || c.BreakerOpenTimeout != 30*time.Second {
		t.Fatalf("breaker defaults")
	}
	if c.DisplayLocale != "en-US" || c.DisplayCurrency != "USD" {
		t.Fatalf("display defaults")
	}
	if !c.SeedProducts {
		t.Fatalf("seed default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("CARTS_BASE_URL", "http://localhost:1234")
	t.Setenv("CARTS_LIMIT", "10")
	t.Setenv("CARTS_CACHE_TTL", "0s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BREAKER_MAX_FAILURES", "2")
	t.Setenv("DISPLAY_LOCALE", "de-DE")
	t.Setenv("DISPLAY_CURRENCY", "EUR")
	t.Setenv("SEED_PRODUCTS", "false")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr != ":9090" || c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("server env")
	}
	if c.CartsBaseURL != "http://localhost:1234" || c.CartsLimit != 10 || c.CartsCacheTTL != 0 {
		t.Fatalf("carts env: %+v", c)
	}
	if c.RedisAddr != "localhost:6379" || c.BreakerMaxFailures != 2 {
		t.Fatalf("redis/breaker env")
	}
	if c.CacheEnabled() {
		t.Fatalf("zero CARTS_CACHE_TTL must disable the cache")
	}
	if c.DisplayLocale != "de-DE" || c.DisplayCurrency != "EUR" || c.SeedProducts {
		t.Fatalf("display/seed env")
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CARTS_LIMIT", "many")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("expected parse error, got %v", err)
	}

	t.Setenv("CARTS_LIMIT", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative limit")
	}
}

func TestCacheEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"no redis", Config{CartsCacheTTL: time.Minute}, false},
		{"zero ttl", Config{RedisAddr: "localhost:6379"}, false},
		{"negative ttl", Config{RedisAddr: "localhost:6379", CartsCacheTTL: -time.Second}, false},
		{"enabled", Config{RedisAddr: "localhost:6379", CartsCacheTTL: time.Minute}, true},
	}
	for _, tc := range cases {
		if got := tc.cfg.CacheEnabled(); got != tc.want {
			t.Fatalf("%s: CacheEnabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
