package aws

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/internal/errors"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
}

func TestLoadConfigStaticCredentials(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(context.Background(), Options{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestLoadConfigProfile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(os.Getenv("AWS_CONFIG_FILE"), []byte("[profile reporting]\nregion = ap-southeast-2\n"), 0600))

	cfg, err := LoadConfig(context.Background(), Options{Profile: "reporting"})
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)

	_, err = LoadConfig(context.Background(), Options{Profile: "missing"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestForRegion(t *testing.T) {
	base := awssdk.Config{Region: "eu-west-1"}
	copied := ForRegion(base, PricingRegion)

	assert.Equal(t, "us-east-1", copied.Region)
	assert.Equal(t, "eu-west-1", base.Region)
}
