package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLVerifier runs generated DDL inside a transaction that is always
// rolled back.  SQLite DDL runs against a scratch database file that is
// removed afterwards; PostgreSQL DDL runs against the database named by
// the DSN.
type SQLVerifier struct {
	dialect SQLDialect
	dsn     string
}

func NewSQLVerifier(dialect SQLDialect, dsn string) (SQLVerifier, error) {
	switch dialect {
	case SQLDialectSQLite:
	case SQLDialectPostgreSQL:
		if dsn == "" {
			return SQLVerifier{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("postgresql DDL verification requires a database DSN")
		}
	default:
		return SQLVerifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("DDL verification is not supported for dialect %s", dialect))
	}
	return SQLVerifier{dialect: dialect, dsn: dsn}, nil
}

func (v SQLVerifier) Verify(ctx context.Context, ddl string) error {
	driver, dsn := "pgx", v.dsn
	if v.dialect == SQLDialectSQLite {
		path := filepath.Join(os.TempDir(), "lmtk-verify-"+uuid.New().String()+".db")
		defer func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Debug().Err(err).Str("path", path).Msg("failed to remove scratch database")
			}
		}()
		driver, dsn = "sqlite", path+"?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open " + string(v.dialect) + " database").
			WithCause(err)
	}
	defer db.Close()
	return ExecStatements(ctx, db, ddl)
}

// ExecStatements executes every statement of ddl in one transaction and
// rolls it back.  A failing statement aborts with FailedPrecondition.
func ExecStatements(ctx context.Context, db *sql.DB, ddl string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to begin verification transaction").
			WithCause(err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Debug().Err(err).Msg("failed to roll back verification transaction")
		}
	}()

	statements := SplitStatements(ddl)
	for i, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("DDL statement %d failed: %s", i+1, firstLine(statement))).
				WithCause(err)
		}
	}
	log.Debug().Int("statements", len(statements)).Msg("DDL verified")
	return nil
}

// SplitStatements drops "--" comment lines and splits the rest on ";".
// Semicolons inside single-quoted literals or double-quoted identifiers do
// not end a statement.
func SplitStatements(ddl string) []string {
	var (
		out     []string
		current strings.Builder
		quote   rune
	)
	flush := func() {
		if statement := strings.TrimSpace(current.String()); statement != "" {
			out = append(out, statement)
		}
		current.Reset()
	}
	for _, line := range strings.SplitAfter(ddl, "\n") {
		if quote == 0 && strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		for _, r := range line {
			switch {
			case quote != 0:
				if r == quote {
					quote = 0
				}
			case r == '\'' || r == '"':
				quote = r
			case r == ';':
				flush()
				continue
			}
			current.WriteRune(r)
		}
	}
	flush()
	return out
}

func firstLine(statement string) string {
	line, _, _ := strings.Cut(statement, "\n")
	return line
}
