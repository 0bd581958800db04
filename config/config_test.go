package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/config"
)

const document = `
snapshot = "s3://exports/segmentstore"
document = "2024-02-01.yaml.zst"
log_level = "debug"

[s3]
region = "eu-west-1"
endpoint = "http://localhost:9000"
access_key_id = "${KEY_ID}"
secret_access_key = "${SECRET}"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segview.toml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		Snapshot: "s3://exports/segmentstore",
		Document: "2024-02-01.yaml.zst",
		LogLevel: "debug",
		S3: config.S3{
			Region:          "eu-west-1",
			Endpoint:        "http://localhost:9000",
			AccessKeyID:     "${KEY_ID}",
			SecretAccessKey: "${SECRET}",
		},
	}, cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParse_UnknownKeys(t *testing.T) {
	_, err := config.Parse("snapshot = \"/tmp\"\nsnapshots = \"/tmp\"\n[s3]\nbucket = \"b\"\n")
	assert.EqualError(t, err, "unknown config keys: s3.bucket, snapshots")

	_, err = config.Parse("snapshot = ")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg, err := config.Parse(document)
	require.NoError(t, err)

	params := config.NewParams()
	params.Set("KEY_ID", "key")
	t.Setenv("SEGVIEW_PARAM_SECRET", "secret")
	require.NoError(t, cfg.Resolve(params))

	assert.Equal(t, "key", cfg.S3.AccessKeyID)
	assert.Equal(t, "secret", cfg.S3.SecretAccessKey)
	assert.Equal(t, "s3://exports/segmentstore", cfg.Snapshot, "plain values are kept")

	opts := cfg.LocationOptions()
	assert.Equal(t, "key", opts.S3.AccessKeyID)
	assert.Equal(t, "http://localhost:9000", opts.S3.Endpoint)
}

func TestResolve_MissingParam(t *testing.T) {
	cfg := &config.Config{Azure: config.Azure{ConnectionString: "${SEGVIEW_TEST_UNSET}"}}
	err := cfg.Resolve(config.NewParams())
	assert.ErrorContains(t, err, `parameter "SEGVIEW_TEST_UNSET" not found`)
}

func TestValidate(t *testing.T) {
	valid := &config.Config{Snapshot: "/var/exports", Document: "a.yaml"}
	assert.NoError(t, valid.Validate())

	invalid := &config.Config{
		Snapshot: "",
		Document: "a.txt",
		LogLevel: "loud",
		S3:       config.S3{AccessKeyID: "key"},
	}
	err := invalid.Validate()
	require.Error(t, err)
	for _, problem := range []string{
		"snapshot is required",
		`document "a.txt"`,
		`invalid log level "loud"`,
		"must be set together",
	} {
		assert.ErrorContains(t, err, problem, "every problem is reported")
	}

	azure := &config.Config{Snapshot: "azblob://container"}
	assert.ErrorContains(t, azure.Validate(), "connection_string is required")
}
