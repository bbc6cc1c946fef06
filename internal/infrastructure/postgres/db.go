package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Querier lo que los repos necesitan de *pgxpool.Pool o de pgx.Tx. Begin sobre una tx abre
// un savepoint, así que las escrituras de varias sentencias son atómicas en ambos casos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeErr traduce el error de un INSERT/UPDATE: único → ErrDuplicate,
// referencia inexistente → ErrNotFound.
func writeErr(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteErr traduce el error de un DELETE: una FK RESTRICT violada → ErrInUse.
func deleteErr(op string, err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		return domain.ErrInUse
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scanner lo común entre pgx.Row y pgx.CollectableRow.
type scanner interface {
	Scan(dest ...any) error
}

// one escanea una fila; (nil, nil) si no existe.
func one[T any](row pgx.Row, scan func(scanner) (*T, error), op string) (*T, error) {
	v, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// many ejecuta la consulta y escanea todas sus filas.
func many[T any](ctx context.Context, q Querier, scan func(scanner) (*T, error), op, sql string, args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*T, error) {
		return scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// listQuery consulta paginada: cuenta con los mismos filtros y trae la página pedida.
// from incluye FROM/JOIN/WHERE; sus parámetros son args ($1..$n).
type listQuery struct {
	op      string
	columns string
	from    string
	orderBy string
	args    []any
}

// lockOrInsert inserta la fila si falta (ON CONFLICT DO NOTHING) y la bloquea. Si un
// borrado concurrente gana entre ambos pasos la lectura queda vacía y se reintenta una vez.
func lockOrInsert[T any](ctx context.Context, insert func(context.Context) error, lock func(context.Context) (*T, error)) (*T, error) {
	for attempt := 0; attempt < 2; attempt++ {
		if err := insert(ctx); err != nil {
			return nil, err
		}
		row, err := lock(ctx)
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func pageOf[T any](ctx context.Context, q Querier, lq listQuery, page repository.Page, scan func(scanner) (*T, error)) ([]*T, int, error) {
	var total int
	if err := q.QueryRow(ctx, "SELECT count(*) "+lq.from, lq.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: contar: %w", lq.op, err)
	}
	n := len(lq.args)
	sql := fmt.Sprintf("SELECT %s %s ORDER BY %s LIMIT NULLIF($%d, 0) OFFSET $%d",
		lq.columns, lq.from, lq.orderBy, n+1, n+2)
	args := append(append([]any{}, lq.args...), page.Limit(), page.Offset())
	list, err := many(ctx, q, scan, lq.op, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// where arma una cláusula WHERE numerando los parámetros en orden.
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente $n.
func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// nullable convierte "" en NULL para columnas de referencia opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
