package repositories

import (
	"errors"

	"github.com/go-pg/pg/v10"
)

const uniqueViolationCode = "23505"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type repository struct {
	db *pg.DB
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pg.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolationCode {
		return ErrDuplicate
	}

	return err
}
