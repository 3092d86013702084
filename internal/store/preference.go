package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/orientation/internal/i18n"
)

// preferenceRepo implements PreferenceRepo on the preferences table.
type preferenceRepo struct {
	drv *entsql.Driver
	log *zap.Logger
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().
		Select(columnValue).
		From(entsql.Table(preferencesTable)).
		Where(entsql.EQ(columnKey, key)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("query preference %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("query preference %q: %w", key, err)
		}
		return "", false, nil
	}

	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan preference %q: %w", key, err)
	}
	return value, true, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().
		Insert(preferencesTable).
		Columns(columnKey, columnValue, columnUpdatedAt).
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns(columnKey),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save preference %q: %w", key, err)
	}
	r.log.Debug("preference saved", zap.String("key", key), zap.String("value", value))
	return nil
}

func (r *preferenceRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete(preferencesTable).
		Where(entsql.EQ(columnKey, key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}

func (r *preferenceRepo) Language(ctx context.Context) (i18n.Language, bool, error) {
	v, ok, err := r.Get(ctx, KeyLanguage)
	if err != nil || !ok {
		return i18n.DefaultLanguage, false, err
	}
	lang := i18n.Language(v)
	if !lang.Valid() {
		r.log.Warn("ignoring unsupported stored language", zap.String("value", v))
		return i18n.DefaultLanguage, false, nil
	}
	return lang, true, nil
}

func (r *preferenceRepo) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return r.Set(ctx, KeyLanguage, string(lang))
}
