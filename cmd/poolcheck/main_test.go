package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArowuTest/quizseason-admin/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const adminPool = `ID,Question,Options,Correct Answer Index,Status
adm-1,Capital of Nigeria?,Lagos|Abuja,1,active
adm-2,Bad index,a|b,9,active
`

func writePool(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"poolcheck"}, args...))
	return out.String(), err
}

func TestAdminSummary(t *testing.T) {
	path := writePool(t, "admin.csv", adminPool)

	out, err := runApp(t, "admin", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 1 imported, 1 skipped")
}

func TestAdminJSON(t *testing.T) {
	path := writePool(t, "admin.csv", adminPool)

	out, err := runApp(t, "admin", "--json", path)
	require.NoError(t, err)

	var result utils.PoolImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 1)
}

func TestStrictFailsOnSkippedRows(t *testing.T) {
	path := writePool(t, "admin.csv", adminPool)

	_, err := runApp(t, "admin", "--strict", path)
	require.Error(t, err)
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestMerchantPool(t *testing.T) {
	path := writePool(t, "merchant.csv", "ID,Question,Type,Alternative Answers\nm-1,Name a Nigerian city,non_objective,Lagos|Abuja\n")

	out, err := runApp(t, "merchant", "--strict", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows, 1 imported, 0 skipped")
}

func TestMissingFileArgument(t *testing.T) {
	_, err := runApp(t, "admin")
	require.Error(t, err)

	_, err = runApp(t, "merchant", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
