package mongo

import (
	"testing"

	"innkeep/pkg/config"
)

func TestDatabaseName(t *testing.T) {
	t.Setenv(config.EnvMongoDatabaseName, "")
	if got := DatabaseName(); got != config.DefaultMongoDatabaseName {
		t.Errorf("expected default database name, got %q", got)
	}

	t.Setenv(config.EnvMongoDatabaseName, "innkeep_staging")
	if got := DatabaseName(); got != "innkeep_staging" {
		t.Errorf("expected database name from environment, got %q", got)
	}
}
