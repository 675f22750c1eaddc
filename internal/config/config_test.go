package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port == "" {
		t.Fatalf("expected a default port")
	}
	if cfg.Gemini.Model == "" {
		t.Fatalf("expected a default model name")
	}
	if cfg.Analyzer.MaxToolRounds <= 0 {
		t.Fatalf("expected a positive tool round budget, got %d", cfg.Analyzer.MaxToolRounds)
	}
	if cfg.Analyzer.BatchConcurrency <= 0 {
		t.Fatalf("expected positive batch concurrency, got %d", cfg.Analyzer.BatchConcurrency)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("GEMINI_MODEL", "gemini-custom")
	t.Setenv("ANALYZER_MAX_TOOL_ROUNDS", "5")
	t.Setenv("READ_TIMEOUT", "45s")

	cfg := Load()

	if cfg.Server.Port != "8088" {
		t.Fatalf("PORT not picked up: %s", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-custom" {
		t.Fatalf("GEMINI_MODEL not picked up: %s", cfg.Gemini.Model)
	}
	if cfg.Analyzer.MaxToolRounds != 5 {
		t.Fatalf("ANALYZER_MAX_TOOL_ROUNDS not picked up: %d", cfg.Analyzer.MaxToolRounds)
	}
	if cfg.Server.ReadTimeout.String() != "45s" {
		t.Fatalf("READ_TIMEOUT not picked up: %s", cfg.Server.ReadTimeout)
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "fitdb")

	dsn := Load().GetDatabaseDSN()

	want := "host=db.internal"
	if len(dsn) == 0 || dsn[:len(want)] != want {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
}

func TestGetEnvAsIntFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")

	if got := getEnvAsInt("SOME_INT", 42); got != 42 {
		t.Fatalf("expected fallback 42, got %d", got)
	}

	t.Setenv("SOME_INT", "7")
	if got := getEnvAsInt("SOME_INT", 42); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
