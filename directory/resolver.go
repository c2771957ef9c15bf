// Package directory resolves polymorphic author references to display
// projections. Forum documents carry (authorKind, authorId) pairs; the
// resolver dispatches on the kind tag to the right table.
package directory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/careloop/careboard/models"
)

// Resolver turns an author reference into a display projection. A missing
// entity resolves to (nil, nil): callers must tolerate an absent author on
// any node rather than fail the whole request.
type Resolver interface {
	Resolve(ctx context.Context, kind string, id uint) (*models.Author, error)
}

type lookupFunc func(ctx context.Context, id uint) (*models.Author, error)

// DBResolver resolves authors against the MySQL directory tables through a
// kind-dispatching lookup table.
type DBResolver struct {
	db      *gorm.DB
	lookups map[string]lookupFunc
}

// NewDBResolver creates a resolver over the given database.
func NewDBResolver(db *gorm.DB) *DBResolver {
	r := &DBResolver{db: db}
	r.lookups = map[string]lookupFunc{
		models.AuthorKindUser:   r.lookupUser,
		models.AuthorKindDoctor: r.lookupDoctor,
	}
	return r
}

// Resolve dispatches on kind. Unknown kinds resolve like missing entities.
func (r *DBResolver) Resolve(ctx context.Context, kind string, id uint) (*models.Author, error) {
	lookup, ok := r.lookups[kind]
	if !ok {
		return nil, nil
	}
	return lookup(ctx, id)
}

func (r *DBResolver) lookupUser(ctx context.Context, id uint) (*models.Author, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &models.Author{Name: user.Name}, nil
}

func (r *DBResolver) lookupDoctor(ctx context.Context, id uint) (*models.Author, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &models.Author{Name: doctor.Name, Specialization: doctor.Specialization}, nil
}
