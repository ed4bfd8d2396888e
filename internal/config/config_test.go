package config

import (
	"testing"

	"github.com/unirideapp/uniride-api/internal/validators"
)

// El admin sembrado pasa por las mismas validaciones de formato que los
// usuarios creados por la API.
func TestDefaultAdminLegajoIsValid(t *testing.T) {
	t.Setenv("ADMIN_LEGAJO", "")

	cfg := Load()
	if !validators.IsValidLegajo(cfg.AdminLegajo) {
		t.Errorf("default admin legajo %q fails the format rule", cfg.AdminLegajo)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{ServerPort: "8080"}
	if got := cfg.Addr(); got != ":8080" {
		t.Errorf("Addr() = %q, want :8080", got)
	}
}
