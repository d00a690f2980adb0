package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Builder squirrel builder с плейсхолдерами нужного диалекта
type Builder struct {
	dialect string
	sb      squirrel.StatementBuilderType
}

// New создает builder для драйвера postgres ($1) или sqlite (?)
func New(dialect string) (*Builder, error) {
	switch dialect {
	case DialectPostgres:
		return &Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, nil
	case DialectSQLite:
		return &Builder{dialect: dialect, sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	default:
		return nil, fmt.Errorf("psqlbuilder: unsupported dialect %q", dialect)
	}
}

// MustNew как New, но паникует на неизвестном диалекте
func MustNew(dialect string) *Builder {
	b, err := New(dialect)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) Dialect() string {
	return b.dialect
}

func (b *Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b *Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b *Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b *Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// LockForUpdate добавляет FOR UPDATE там, где диалект его поддерживает
// SQLite сериализует писателей на уровне базы, построчных блокировок нет
func (b *Builder) LockForUpdate(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if b.dialect == DialectPostgres {
		return q.Suffix("FOR UPDATE")
	}
	return q
}

// LockForShare добавляет FOR SHARE там, где диалект его поддерживает
func (b *Builder) LockForShare(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if b.dialect == DialectPostgres {
		return q.Suffix("FOR SHARE")
	}
	return q
}
