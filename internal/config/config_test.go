package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"signpost-summary", "signposts.xml"})

	require.NoError(t, err)
	assert.Equal(t, "signposts.xml", cfg.InputPath)
	assert.Equal(t, "engine-sim", cfg.Subsystem)
	assert.Equal(t, "perf", cfg.Category)
	assert.Equal(t, 20, cfg.Top)
	assert.Empty(t, cfg.Where)
	assert.False(t, cfg.CountDuplicateBegins)
	assert.False(t, cfg.CountNegativeDurations)
}

func TestParseArgs_Flags(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"signpost-summary",
		"--subsystem", "audio",
		"--category", "latency",
		"--top", "5",
		"--where", `name matches "^Load"`,
		"trace.xml",
	})

	require.NoError(t, err)
	assert.Equal(t, "audio", cfg.Subsystem)
	assert.Equal(t, "latency", cfg.Category)
	assert.Equal(t, 5, cfg.Top)
	assert.Equal(t, `name matches "^Load"`, cfg.Where)
	assert.Equal(t, "trace.xml", cfg.InputPath)
}

func TestParseArgs_ShortFlags(t *testing.T) {
	cfg, err := ParseArgs([]string{"signpost-summary", "-s", "audio", "-c", "latency", "-n", "3", "trace.xml"})

	require.NoError(t, err)
	assert.Equal(t, "audio", cfg.Subsystem)
	assert.Equal(t, "latency", cfg.Category)
	assert.Equal(t, 3, cfg.Top)
}

func TestParseArgs_PolicyFlags(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"signpost-summary",
		"--count-duplicate-begins",
		"--count-negative-durations",
		"trace.xml",
	})

	require.NoError(t, err)
	assert.True(t, cfg.CountDuplicateBegins)
	assert.True(t, cfg.CountNegativeDurations)
}

func TestParseArgs_MissingInputPath(t *testing.T) {
	_, err := ParseArgs([]string{"signpost-summary", "--subsystem", "audio"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usage:")
}

func TestParseArgs_FlagRequiresValue(t *testing.T) {
	for _, flag := range []string{"--subsystem", "--category", "--top", "--where"} {
		_, err := ParseArgs([]string{"signpost-summary", flag})
		require.Error(t, err, flag)
		assert.Contains(t, err.Error(), "requires a value")
	}
}

func TestParseArgs_InvalidTop(t *testing.T) {
	_, err := ParseArgs([]string{"signpost-summary", "--top", "many", "trace.xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --top value")
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	_, err := ParseArgs([]string{"signpost-summary", "--verbose", "trace.xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestParseArgs_ExtraPositional(t *testing.T) {
	_, err := ParseArgs([]string{"signpost-summary", "one.xml", "two.xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected extra argument")
}

func TestParseArgs_EnvOverrides(t *testing.T) {
	t.Setenv("SIGNPOST_SUBSYSTEM", "audio")
	t.Setenv("SIGNPOST_CATEGORY", "latency")
	t.Setenv("SIGNPOST_TOP", "7")

	cfg, err := ParseArgs([]string{"signpost-summary", "trace.xml"})
	require.NoError(t, err)
	assert.Equal(t, "audio", cfg.Subsystem)
	assert.Equal(t, "latency", cfg.Category)
	assert.Equal(t, 7, cfg.Top)
}

func TestParseArgs_FlagBeatsEnv(t *testing.T) {
	t.Setenv("SIGNPOST_SUBSYSTEM", "audio")

	cfg, err := ParseArgs([]string{"signpost-summary", "--subsystem", "render", "trace.xml"})
	require.NoError(t, err)
	assert.Equal(t, "render", cfg.Subsystem)
}

func TestOTELConfig_Enabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	cfg, err := ParseOTELConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, "signpost-summary", cfg.ServiceName)

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	cfg, err = ParseOTELConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "localhost:4318", cfg.Endpoint())
}

func TestOTELConfig_TracesEndpointWins(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "traces:4318")

	cfg, err := ParseOTELConfig()
	require.NoError(t, err)
	assert.Equal(t, "traces:4318", cfg.Endpoint())
}

func TestOTELConfig_ParseResourceAttributes(t *testing.T) {
	cfg := &OTELConfig{ResourceAttributes: "team=sim, host = ci-1,malformed,=nokey"}

	attrs := cfg.ParseResourceAttributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "team", string(attrs[0].Key))
	assert.Equal(t, "sim", attrs[0].Value.AsString())
	assert.Equal(t, "host", string(attrs[1].Key))
	assert.Equal(t, "ci-1", attrs[1].Value.AsString())
}
