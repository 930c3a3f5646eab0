package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("Expected memory store, got %s", cfg.Store.Driver)
	}
	if !cfg.Store.Seed {
		t.Error("Expected seed data to be enabled by default")
	}
	if cfg.Database.Name != "portfolio" {
		t.Errorf("Expected db name portfolio, got %s", cfg.Database.Name)
	}
	if cfg.Places.Country != "us" {
		t.Errorf("Expected places country us, got %s", cfg.Places.Country)
	}
	if cfg.Places.Timeout != 3*time.Second {
		t.Errorf("Expected lookup timeout 3s, got %s", cfg.Places.Timeout)
	}
	if cfg.Places.APIKey != "" {
		t.Errorf("Expected no API key, got %s", cfg.Places.APIKey)
	}
	if cfg.Table.DefaultPageSize != 10 {
		t.Errorf("Expected default page size 10, got %d", cfg.Table.DefaultPageSize)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if !cfg.IsDevelopment() {
		t.Error("Expected development mode")
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_POOL_MIN", "5")
	t.Setenv("DB_POOL_MAX", "20")
	t.Setenv("CORS_ORIGINS", "http://example.com,https://app.example.com")
	t.Setenv("GOOGLE_MAPS_API_KEY", "key-123")
	t.Setenv("PLACES_COUNTRY", "CA")
	t.Setenv("LOOKUP_TIMEOUT", "750ms")
	t.Setenv("DEFAULT_PAGE_SIZE", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "warn" {
		t.Errorf("Expected log level warn, got %s", cfg.Server.LogLevel)
	}
	if cfg.Store.Driver != StorePostgres {
		t.Errorf("Expected postgres store, got %s", cfg.Store.Driver)
	}
	if cfg.Store.Seed {
		t.Error("Expected seed data to be disabled")
	}
	if cfg.Database.Password != "testpass" {
		t.Errorf("Expected password testpass, got %s", cfg.Database.Password)
	}
	if cfg.Database.PoolMax != 20 {
		t.Errorf("Expected pool max 20, got %d", cfg.Database.PoolMax)
	}
	if cfg.CORS.Origins[0] != "http://example.com" {
		t.Errorf("Expected first origin http://example.com, got %s", cfg.CORS.Origins[0])
	}
	if cfg.Places.APIKey != "key-123" {
		t.Errorf("Expected API key key-123, got %s", cfg.Places.APIKey)
	}
	if cfg.Places.Country != "ca" {
		t.Errorf("Expected places country ca, got %s", cfg.Places.Country)
	}
	if cfg.Places.Timeout != 750*time.Millisecond {
		t.Errorf("Expected lookup timeout 750ms, got %s", cfg.Places.Timeout)
	}
	if cfg.Table.DefaultPageSize != 20 {
		t.Errorf("Expected default page size 20, got %d", cfg.Table.DefaultPageSize)
	}
	if cfg.IsDevelopment() {
		t.Error("Expected production mode")
	}
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DB_PASSWORD is missing for the postgres store")
	}
}

func TestLoad_MemoryIgnoresDatabase(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("DB_HOST", "")

	if _, err := Load(); err != nil {
		t.Errorf("Expected memory store to load without database settings, got %v", err)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	clearConfigEnvVars()
	t.Setenv("STORE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown store driver")
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development"},
		Store:  StoreConfig{Driver: StorePostgres},
		Database: DatabaseConfig{
			Host: "localhost", Port: "5432", Name: "portfolio",
			User: "postgres", Password: "postgres", PoolMin: 2, PoolMax: 10,
		},
		CORS:   CORSConfig{Origins: []string{"http://localhost:3000"}},
		Places: PlacesConfig{Country: "us", Timeout: time.Second, FallbackImageURL: "https://example.com/house.jpg"},
		Table:  TableConfig{DefaultPageSize: 10},
	}
}

func TestValidate_InvalidPoolSizes(t *testing.T) {
	tests := []struct {
		name    string
		poolMin int
		poolMax int
		wantErr bool
	}{
		{name: "negative pool min", poolMin: -1, poolMax: 10, wantErr: true},
		{name: "zero pool max", poolMin: 0, poolMax: 0, wantErr: true},
		{name: "pool min greater than max", poolMin: 15, poolMax: 10, wantErr: true},
		{name: "valid pool sizes", poolMin: 2, poolMax: 10, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.PoolMin = tt.poolMin
			cfg.Database.PoolMax = tt.poolMax

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }},
		{name: "missing db password", mutate: func(c *Config) { c.Database.Password = "" }},
		{name: "missing CORS origins", mutate: func(c *Config) { c.CORS.Origins = []string{} }},
		{name: "zero lookup timeout", mutate: func(c *Config) { c.Places.Timeout = 0 }},
		{name: "missing fallback image", mutate: func(c *Config) { c.Places.FallbackImageURL = "" }},
		{name: "unsupported page size", mutate: func(c *Config) { c.Table.DefaultPageSize = 25 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error but got none")
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "single origin", input: "http://localhost:3000", expect: []string{"http://localhost:3000"}},
		{name: "multiple origins", input: "http://localhost:3000,http://localhost:3001", expect: []string{"http://localhost:3000", "http://localhost:3001"}},
		{name: "origins with spaces", input: " http://localhost:3000 , http://localhost:3001 ", expect: []string{"http://localhost:3000", "http://localhost:3001"}},
		{name: "empty string", input: "", expect: []string{}},
		{name: "only commas", input: ",,,", expect: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseOrigins(tt.input)
			if len(result) != len(tt.expect) {
				t.Errorf("Expected %d origins, got %d", len(tt.expect), len(result))
				return
			}
			for i, origin := range result {
				if origin != tt.expect[i] {
					t.Errorf("Expected origin %s at index %d, got %s", tt.expect[i], i, origin)
				}
			}
		})
	}
}

// clearConfigEnvVars unsets every variable Load reads.
func clearConfigEnvVars() {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "STORE_DRIVER", "SEED_DATA",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_POOL_MIN", "DB_POOL_MAX",
		"CORS_ORIGINS", "GOOGLE_MAPS_API_KEY", "PLACES_COUNTRY", "LOOKUP_TIMEOUT",
		"FALLBACK_IMAGE_URL", "DEFAULT_PAGE_SIZE",
	} {
		os.Unsetenv(key)
	}
}
