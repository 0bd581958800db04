// Package config loads the CLI configuration from a TOML file.
//
//	snapshot = "s3://exports/segmentstore"
//	document = "2024-02-01.yaml.zst"
//	log_level = "info"
//
//	[s3]
//	region = "eu-west-1"
//	access_key_id = "${S3_KEY_ID}"
//	secret_access_key = "${S3_SECRET}"
//
//	[azure]
//	connection_string = "${AZURE_CONNECTION_STRING}"
//
// String values of the form ${NAME} are parameters, resolved with Resolve.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"segview.dev/segview/logging"
	"segview.dev/segview/snapshot"
	"segview.dev/segview/storage/locations"
)

type Config struct {
	// Snapshot is the URI of the location holding snapshot documents.
	Snapshot string `toml:"snapshot"`
	// Document is the document to open. Defaults to the latest one.
	Document string `toml:"document"`
	LogLevel string `toml:"log_level"`
	S3       S3     `toml:"s3"`
	Azure    Azure  `toml:"azure"`
}

type S3 struct {
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

type Azure struct {
	ConnectionString string `toml:"connection_string"`
}

// Load reads the configuration file at path. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config document format: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var err error
	if c.Snapshot == "" {
		err = errors.Join(err, errors.New("snapshot is required"))
	}
	if c.Document != "" && !snapshot.IsDocument(c.Document) {
		err = errors.Join(err, fmt.Errorf("document %q is not a .yaml, .yml or .json file", c.Document))
	}
	if _, levelErr := logging.ParseLevel(c.LogLevel); levelErr != nil {
		err = errors.Join(err, levelErr)
	}
	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		err = errors.Join(err, errors.New("s3 access_key_id and secret_access_key must be set together"))
	}
	if strings.HasPrefix(c.Snapshot, "azblob://") && c.Azure.ConnectionString == "" {
		err = errors.Join(err, errors.New("azure connection_string is required for azblob:// snapshots"))
	}
	return err
}

// LocationOptions returns the options to open the snapshot location with.
func (c *Config) LocationOptions() locations.Options {
	return locations.Options{
		S3: locations.S3Options{
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		},
		AzureConnectionString: c.Azure.ConnectionString,
	}
}
