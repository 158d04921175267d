package config

import "os"

type Config struct {
	Port        string
	Env         string
	SupabaseURL string
	SupabaseKey string
}

// Load reads configuration from the environment. The Supabase values may be
// absent here; their absence is reported by the store client on first use,
// not at startup.
func Load() Config {
	key := os.Getenv("SUPABASE_SERVICE_KEY")
	if key == "" {
		key = os.Getenv("SUPABASE_ANON_KEY")
	}

	return Config{
		Port:        getEnv("PORT", "8000"),
		Env:         getEnv("ENV", "development"),
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: key,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
