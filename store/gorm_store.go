package store

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store over a gorm connection (MySQL or PostgreSQL).
type GormStore struct {
	db        *gorm.DB
	dialect   Dialect
	batchSize int
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, batchSize int) *GormStore {
	if batchSize < 1 {
		batchSize = 1000
	}
	dialect := MySQL
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		dialect = Postgres
	}
	return &GormStore{db: db, dialect: dialect, batchSize: batchSize}
}

func (s *GormStore) Dialect() Dialect { return s.dialect }

func (s *GormStore) Count(ctx context.Context, table string) (int64, error) {
	if !ValidIdentifier(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}
	var n int64
	if err := s.db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (s *GormStore) Project(ctx context.Context, q Projection, dest any) error {
	if !ValidIdentifier(q.Table) {
		return fmt.Errorf("invalid table name %q", q.Table)
	}
	tx := s.db.WithContext(ctx).Table(q.Table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	for _, j := range q.Joins {
		tx = tx.Joins(j)
	}
	if q.Where != "" {
		tx = tx.Where(q.Where, q.Args...)
	}
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	}
	if err := tx.Scan(dest).Error; err != nil {
		return fmt.Errorf("select %s from %s: %w", strings.Join(q.Columns, ", "), q.Table, err)
	}
	return nil
}

func (s *GormStore) Append(ctx context.Context, table string, rows any) (int64, error) {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return 0, fmt.Errorf("append to %s: rows must be a slice, got %T", table, rows)
	}
	if v.Len() == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Table(table).Omit(clause.Associations).CreateInBatches(rows, s.batchSize)
	if res.Error != nil {
		return res.RowsAffected, fmt.Errorf("insert into %s: %w", table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) RecomputeOrderTotals(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Exec(RecomputeTotalsSQL(s.dialect))
	if res.Error != nil {
		return 0, fmt.Errorf("recompute order totals: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) CallProcedure(ctx context.Context, name string, args []any) ([]byte, error) {
	stmt, err := CallSQL(s.dialect, name, len(args))
	if err != nil {
		return nil, err
	}

	var out sql.NullString
	if s.dialect == Postgres {
		err = s.db.WithContext(ctx).Raw(stmt, args...).Row().Scan(&out)
	} else {
		// The OUT parameter lives in a session variable, so both statements
		// must run on the same connection.
		err = s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
			if err := tx.Exec(stmt, args...).Error; err != nil {
				return err
			}
			return tx.Raw("SELECT @out").Row().Scan(&out)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	if !out.Valid || strings.TrimSpace(out.String) == "" {
		return nil, nil
	}
	return []byte(out.String), nil
}
