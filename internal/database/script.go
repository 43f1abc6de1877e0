package database

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/iliyamo/meal-planner/internal/logging"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SetupScript returns the create-and-populate script for d.
func SetupScript(d Dialect) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + string(d) + ".sql")
	if err != nil {
		return "", fmt.Errorf("setup script for %s: %w", d, err)
	}
	return string(b), nil
}

// a statement ends at ';' followed by optional blanks and a line break
var statementBreak = regexp.MustCompile(`;[ \t]*[\r\n]+`)

// SplitStatements cuts a script into executable statements. Full-line "--"
// comments are dropped, a trailing ';' on the last statement is removed and
// empty chunks are skipped.
func SplitStatements(script string) []string {
	var out []string
	for _, chunk := range statementBreak.Split(script, -1) {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// ScriptReport summarises a RunScript call.
type ScriptReport struct {
	Executed int `json:"executed"`
	Skipped  int `json:"skipped"`
}

// RunScript executes stmts in order inside one transaction. A failing
// statement is logged and skipped (dropping a table that does not exist yet
// is the usual case); the transaction is committed once at the end.
func (c *Conn) RunScript(ctx context.Context, stmts []string) (ScriptReport, error) {
	var rep ScriptReport
	log := logging.Ctx(ctx)

	tx, err := c.raw.BeginTx(ctx, nil)
	if err != nil {
		return rep, fmt.Errorf("begin setup transaction: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			log.Warn().Err(err).Str(logging.FieldStatement, firstLine(stmt)).Msg("skipping statement")
			rep.Skipped++
			continue
		}
		rep.Executed++
	}
	if err := tx.Commit(); err != nil {
		return rep, fmt.Errorf("commit setup transaction: %w", err)
	}
	return rep, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
