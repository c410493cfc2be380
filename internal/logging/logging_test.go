package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	if err := Setup("debug", "json", &buf); err != nil {
		t.Fatal(err)
	}
	log.Debug().Str("k", "v").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "hello" || entry["k"] != "v" || entry["level"] != "debug" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	if err := Setup("warn", "console", &buf); err != nil {
		t.Fatal(err)
	}
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSetup_BadLevel(t *testing.T) {
	if err := Setup("chatty", "json", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
}
