package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "yaml file", path: "portfolio.yaml", wantErr: false},
		{name: "yml file", path: "portfolio.yml", wantErr: false},
		{name: "wrong extension", path: "portfolio.json", wantErr: true},
		{name: "traversal attempt", path: "../secrets.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateConfigPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateOutputPath(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	_, err = ValidateOutputPath(filepath.Join(dir, "missing", "report.html"))
	assert.Error(t, err, "parent directory must exist")

	_, err = ValidateOutputPath("../escape/report.html")
	assert.Error(t, err)
}

func TestValidateDataPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateDataPath(filepath.Join(dir, "runs", "2024-01-15"), dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	_, err = ValidateDataPath("/somewhere/else", dir)
	assert.Error(t, err)

	// Empty data dir only checks safety.
	_, err = ValidateDataPath("anywhere/at/all", "")
	assert.NoError(t, err)
}

func TestJoinAndValidate(t *testing.T) {
	dir := t.TempDir()

	got, err := JoinAndValidate(dir, "runs", "latest")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "runs", "latest"), got)

	_, err = JoinAndValidate(dir, "..", "escape")
	assert.Error(t, err)
}
