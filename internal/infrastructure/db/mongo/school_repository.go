package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edupay/tuition-system/internal/core/domain"
)

const schoolCollection = "schools"

type SchoolRepository struct {
	coll *mongo.Collection
}

func NewSchoolRepository(db *mongo.Database) *SchoolRepository {
	return &SchoolRepository{coll: db.Collection(schoolCollection)}
}

type schoolDoc struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
}

func (r *SchoolRepository) Create(ctx context.Context, school *domain.School) (*domain.School, error) {
	doc := schoolDoc{
		ID:           school.ID.String(),
		Name:         school.Name,
		Username:     school.Username,
		PasswordHash: school.PasswordHash,
		CreatedAt:    school.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSchoolExists
		}
		return nil, fmt.Errorf("insert school: %w", err)
	}

	out := *school
	return &out, nil
}

func (r *SchoolRepository) FindByUsername(ctx context.Context, username string) (*domain.School, error) {
	var doc schoolDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("find school: %w", err)
	}
	return docToSchool(doc)
}

func docToSchool(doc schoolDoc) (*domain.School, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse school id %q: %w", doc.ID, err)
	}
	return &domain.School{
		ID:           id,
		Name:         doc.Name,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    unixToTime(doc.CreatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
