package config

import "testing"

func TestEnvIntOr_FallsBackWhenUnset(t *testing.T) {
	t.Setenv("RUSTRAK_TEST_UNSET_INT", "")
	v, err := envIntOr("RUSTRAK_TEST_UNSET_INT", 587)
	if err != nil || v != 587 {
		t.Fatalf("got (%d, %v), want (587, nil)", v, err)
	}
}

func TestEnvIntOr_ParsesOverride(t *testing.T) {
	t.Setenv("RUSTRAK_TEST_SMTP_PORT", "2525")
	v, err := envIntOr("RUSTRAK_TEST_SMTP_PORT", 587)
	if err != nil || v != 2525 {
		t.Fatalf("got (%d, %v), want (2525, nil)", v, err)
	}
}

func TestEnvIntOr_RejectsNonNumeric(t *testing.T) {
	t.Setenv("RUSTRAK_TEST_BAD_INT", "notanumber")
	if _, err := envIntOr("RUSTRAK_TEST_BAD_INT", 587); err == nil {
		t.Fatal("expected an error for a non-numeric override")
	}
}

func TestLoad_RequiresDatabaseURLWithoutVault(t *testing.T) {
	t.Setenv("VAULT_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail fast without DATABASE_URL or VAULT_ADDR")
	}
}
