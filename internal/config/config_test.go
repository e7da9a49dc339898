package config_test

import (
	"testing"
	"time"

	"go-ems/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EVENT_DELIVERY_MODE", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")
	t.Setenv("DB_RUN_MIGRATIONS", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.DeliveryOutbox, cfg.EventDeliveryMode)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_RUN_MIGRATIONS", "true")
	t.Setenv("EVENT_DELIVERY_MODE", "DIRECT")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, config.DeliveryDirect, cfg.EventDeliveryMode)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")

	_, err := config.Load()

	assert.ErrorContains(t, err, "OUTBOX_POLL_INTERVAL")
}

func TestValidateAPI(t *testing.T) {
	valid := config.Config{JWTSecret: "s", InternalAPIKey: "k", EventDeliveryMode: config.DeliveryOutbox}
	assert.NoError(t, valid.ValidateAPI())

	noSecret := valid
	noSecret.JWTSecret = ""
	assert.ErrorContains(t, noSecret.ValidateAPI(), "JWT_SECRET")

	noKey := valid
	noKey.InternalAPIKey = ""
	assert.ErrorContains(t, noKey.ValidateAPI(), "INTERNAL_API_KEY")

	direct := valid
	direct.EventDeliveryMode = config.DeliveryDirect
	assert.ErrorContains(t, direct.ValidateAPI(), "KAFKA_BROKER")
	direct.KafkaBroker = "kafka:9092"
	assert.NoError(t, direct.ValidateAPI())

	unknown := valid
	unknown.EventDeliveryMode = "carrier-pigeon"
	assert.Error(t, unknown.ValidateAPI())
}

func TestValidateWorker(t *testing.T) {
	assert.Error(t, config.Config{}.ValidateWorker())
	assert.NoError(t, config.Config{KafkaBroker: "kafka:9092"}.ValidateWorker())
}
