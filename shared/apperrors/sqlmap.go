package apperrors

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error class/code prefixes used to classify a *pq.Error into
// a RepoError kind.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
	sqlStateSerializationFail   = "40001"
)

// MapSQLError turns a raw driver error from operation against entity into a
// *RepoError, following the same classification rules as the Rust
// implementation's map_sqlx_error: row-not-found, unique/FK/check
// violation, serialization failure, else a generic Database wrap.
func MapSQLError(err error, operation, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NewRepoNotFound(entity)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		constraint := pqErr.Constraint
		switch pqErr.Code.Class().String() {
		case "23": // integrity constraint violation
			switch string(pqErr.Code) {
			case sqlStateUniqueViolation:
				return NewRepoConflict(constraint)
			case sqlStateForeignKeyViolation:
				return NewRepoForeignKeyViolation(constraint)
			case sqlStateCheckViolation:
				return NewRepoCheckViolation(constraint)
			}
		}
		if string(pqErr.Code) == sqlStateSerializationFail {
			return NewRepoSerializationFailure()
		}
		return NewRepoDatabase(operation, err)
	}

	return NewRepoDatabase(operation, err)
}
