package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8085" {
		t.Errorf("default port: got %q", cfg.Server.Port)
	}
	if cfg.Impute.Iterations != 3 {
		t.Errorf("default iterations: got %d", cfg.Impute.Iterations)
	}
	if cfg.Impute.Chains != 1 {
		t.Errorf("default chains: got %d", cfg.Impute.Chains)
	}
	if cfg.Impute.Seed != 42 {
		t.Errorf("default seed: got %d", cfg.Impute.Seed)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GOMICE_PORT", "9090")
	t.Setenv("GOMICE_ITERATIONS", "10")
	t.Setenv("GOMICE_CHAINS", "4")
	t.Setenv("GOMICE_SEED", "1234")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" || cfg.Impute.Iterations != 10 ||
		cfg.Impute.Chains != 4 || cfg.Impute.Seed != 1234 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("GOMICE_ITERATIONS", "-1")
	if _, err := Load(); err == nil {
		t.Error("negative iteration count should be rejected")
	}

	t.Setenv("GOMICE_ITERATIONS", "3")
	t.Setenv("GOMICE_CHAINS", "0")
	if _, err := Load(); err == nil {
		t.Error("zero chain count should be rejected")
	}
}
