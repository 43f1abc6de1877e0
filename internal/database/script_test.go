package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	script := "-- header\r\n" +
		"DROP TABLE a;\r\n" +
		"CREATE TABLE a (\n  id INTEGER, -- inline stays\n  name VARCHAR(10)\n);  \n\n" +
		"   \n;\n" +
		"INSERT INTO a VALUES (1, 'x;y');\n" +
		"INSERT INTO a VALUES (2, 'z');"

	got := SplitStatements(script)
	require.Len(t, got, 4)
	assert.Equal(t, "DROP TABLE a", got[0])
	assert.True(t, strings.HasPrefix(got[1], "CREATE TABLE a ("))
	assert.Contains(t, got[1], "-- inline stays")
	assert.Equal(t, "INSERT INTO a VALUES (1, 'x;y')", got[2])
	assert.Equal(t, "INSERT INTO a VALUES (2, 'z')", got[3])
}

func TestSplitStatementsEmpty(t *testing.T) {
	assert.Empty(t, SplitStatements(""))
	assert.Empty(t, SplitStatements("-- only a comment\n;\n"))
}

func TestSetupScriptsForEveryDialect(t *testing.T) {
	for _, d := range []Dialect{Oracle, MySQL, SQLite} {
		script, err := SetupScript(d)
		require.NoError(t, err, d)

		stmts := SplitStatements(script)
		assert.NotEmpty(t, stmts, d)
		for _, s := range stmts {
			assert.False(t, strings.HasSuffix(s, ";"), "%s: %q", d, s)
		}
	}

	_, err := SetupScript(Dialect("postgres"))
	assert.Error(t, err)
}
