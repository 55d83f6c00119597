package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetOwned - универсальная функция для получения сущности по ID в пределах владельца.
// Чужая запись неотличима от отсутствующей.
func GetOwned[T any](ctx context.Context, q sqlx.QueryerContext, table string, id, userID uuid.UUID) (*T, error) {
	var entity T
	query := sqlx.Rebind(sqlx.BindType(driverName(q)), fmt.Sprintf("SELECT * FROM %s WHERE id = ? AND user_id = ?", table))

	if err := sqlx.GetContext(ctx, q, &entity, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &entity, nil
}

// ExpectAffected превращает "ноль затронутых строк" в ErrNotFound.
func ExpectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextSortOrder возвращает следующий порядковый номер в списке владельца.
func NextSortOrder(ctx context.Context, tx *sqlx.Tx, table string, userID uuid.UUID) (int, error) {
	var next int
	query := tx.Rebind(fmt.Sprintf("SELECT COALESCE(MAX(sort_order), -1) + 1 FROM %s WHERE user_id = ?", table))
	if err := tx.GetContext(ctx, &next, query, userID); err != nil {
		return 0, fmt.Errorf("next sort order in %s: %w", table, err)
	}
	return next, nil
}

// IDAllocator выдаёт идентификаторы для пересоздаваемых при bulk replace строк.
// Присланный клиентом ID сохраняется, если он валиден, не повторяется в пакете и не занят
// чужой строкой, иначе генерируется новый.
type IDAllocator struct {
	tx    *sqlx.Tx
	table string
	seen  map[uuid.UUID]struct{}
}

// NewIDAllocator создаёт аллокатор для таблицы внутри транзакции.
func NewIDAllocator(tx *sqlx.Tx, table string) *IDAllocator {
	return &IDAllocator{tx: tx, table: table, seen: make(map[uuid.UUID]struct{})}
}

// Resolve возвращает ID для вставки.
func (a *IDAllocator) Resolve(ctx context.Context, requested uuid.UUID) (uuid.UUID, error) {
	if requested != uuid.Nil {
		if _, dup := a.seen[requested]; !dup {
			var taken int
			query := a.tx.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", a.table))
			if err := a.tx.GetContext(ctx, &taken, query, requested); err != nil {
				return uuid.Nil, fmt.Errorf("check id in %s: %w", a.table, err)
			}
			if taken == 0 {
				a.seen[requested] = struct{}{}
				return requested, nil
			}
		}
	}

	id := uuid.New()
	a.seen[id] = struct{}{}
	return id, nil
}

// BatchInserter - универсальная функция для массовой вставки
// Устраняет N+1 проблемы при вставке в цикле
type BatchInserter struct {
	tx          *sqlx.Tx
	query       string
	batchSize   int
	values      []interface{}
	rowCount    int
	fieldsCount int
}

// NewBatchInserter создает новый batch inserter
func NewBatchInserter(tx *sqlx.Tx, baseQuery string, fieldsCount int, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		tx:          tx,
		query:       baseQuery,
		batchSize:   batchSize,
		values:      make([]interface{}, 0, batchSize*fieldsCount),
		fieldsCount: fieldsCount,
	}
}

// Add добавляет строку для вставки
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...interface{}) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("expected %d fields, got %d", bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}

	return nil
}

// Flush выполняет вставку накопленных значений
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", bi.fieldsCount), ", ") + ")"
	rows := make([]string, bi.rowCount)
	for i := range rows {
		rows[i] = row
	}

	query := bi.tx.Rebind(bi.query + " VALUES " + strings.Join(rows, ", "))

	if _, err := bi.tx.ExecContext(ctx, query, bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.values = bi.values[:0]
	bi.rowCount = 0

	return nil
}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func driverName(q sqlx.QueryerContext) string {
	switch v := q.(type) {
	case *sqlx.DB:
		return v.DriverName()
	case *sqlx.Tx:
		return v.DriverName()
	default:
		return ""
	}
}
