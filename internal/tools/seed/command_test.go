package seed

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/identity-core/internal/database"
	"github.com/sandeepkv93/identity-core/internal/tools/common"
)

func execute(t *testing.T, args ...string) common.CIResult {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(&common.Options{CI: true, Timeout: 10 * time.Second})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	var res common.CIResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res), "output: %s", out.String())
	return res
}

func TestDryRunListsRoles(t *testing.T) {
	res := execute(t, "dry-run")
	assert.True(t, res.OK)
	assert.Equal(t, []string{
		"would ensure role 1: USER",
		"would ensure role 2: ADMIN",
		"no mutation executed in dry-run mode",
	}, res.Details)
}

func TestApplyIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")
	db, err := database.OpenDSN("sqlite:" + path)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	common.CloseDB(db)

	t.Setenv("DATABASE_URL", "sqlite:"+path)
	t.Setenv("JWT_SECRET_KEY", "abcdefghijklmnopqrstuvwxyz123456")

	res := execute(t, "apply")
	assert.Equal(t, []string{"roles created: 2"}, res.Details)

	res = execute(t, "apply")
	assert.Equal(t, []string{"roles already present, nothing to do"}, res.Details)
}
