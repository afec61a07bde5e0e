package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

// En production cada evento sale en JSON con servicio y componente.
func TestComponent_CamposEstructurados(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "corporate-meals", Output: &buf})

	log.Component("cache").Info().Str("key", "catalog").Msg("fetch")

	var evt map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &evt))
	assert.Equal(t, "corporate-meals", evt["service"])
	assert.Equal(t, "cache", evt["component"])
	assert.Equal(t, "catalog", evt["key"])
	assert.Equal(t, "fetch", evt["message"])
}

// Por debajo del nivel configurado no se escribe nada.
func TestNivel_FiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("ignorado")
	assert.Zero(t, buf.Len())
}

func TestComponent_ReceptorNil(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Component("x").Info().Msg("nada") })
}
