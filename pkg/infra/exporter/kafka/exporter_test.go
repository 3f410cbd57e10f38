package kafka

import (
	"context"
	"testing"

	"github.com/NeuralTrust/TrustMod/pkg/infra/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(map[string]interface{}{
		"host":  "localhost",
		"port":  "9092",
		"topic": "moderation-decisions",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{Host: "localhost", Port: "9092", Topic: "moderation-decisions"}, cfg)
}

func TestConfigValidate(t *testing.T) {
	assert.EqualError(t, Config{Port: "1", Topic: "t"}.Validate(), "kafka host is required")
	assert.EqualError(t, Config{Host: "h", Topic: "t"}.Validate(), "kafka port is required")
	assert.EqualError(t, Config{Host: "h", Port: "1"}.Validate(), "kafka topic is required")
}

func TestExport_WithoutProducer(t *testing.T) {
	e := &Exporter{}
	assert.Error(t, e.Export(context.Background(), exporter.Decision{}))
	e.Close()
}

func TestNewExporter_InvalidConfig(t *testing.T) {
	_, err := NewExporter(Config{})
	assert.Error(t, err)
}
