package storage

import "rentready/models"

// UnitWriter is the interface any unit export/persistence backend must satisfy.
type UnitWriter interface {
	Write(units []*models.UnitRecord) error
	Close() error
}
