package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edupay/tuition-system/internal/core/domain"
)

const studentCollection = "students"

type StudentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{coll: db.Collection(studentCollection)}
}

type studentDoc struct {
	ID               string `bson:"_id"`
	SchoolID         string `bson:"school_id"`
	FirstName        string `bson:"first_name"`
	LastName         string `bson:"last_name"`
	Email            string `bson:"email"`
	Department       string `bson:"department"`
	Status           string `bson:"status"`
	PaymentReference string `bson:"payment_reference,omitempty"`
	CreatedAt        int64  `bson:"created_at"`
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	doc := studentDoc{
		ID:               student.ID.String(),
		SchoolID:         student.SchoolID.String(),
		FirstName:        student.FirstName,
		LastName:         student.LastName,
		Email:            student.Email,
		Department:       student.Department,
		Status:           string(student.Status),
		PaymentReference: student.PaymentReference,
		CreatedAt:        student.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (r *StudentRepository) ListByOwner(ctx context.Context, schoolID uuid.UUID) ([]*domain.Student, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"school_id": schoolID.String()})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []studentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}

	out := make([]*domain.Student, 0, len(docs))
	for _, doc := range docs {
		st, err := docToStudent(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// ownedFilter matches a student only under its owning school, so a foreign
// tenant's query behaves like a missing record.
func ownedFilter(schoolID, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "school_id": schoolID.String()}
}

func (r *StudentRepository) FindByID(ctx context.Context, schoolID, id uuid.UUID) (*domain.Student, error) {
	var doc studentDoc
	if err := r.coll.FindOne(ctx, ownedFilter(schoolID, id)).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return docToStudent(doc)
}

func (r *StudentRepository) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, ownedFilter(schoolID, id))
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) SetPaymentReference(ctx context.Context, schoolID, id uuid.UUID, reference string) error {
	res, err := r.coll.UpdateOne(ctx, ownedFilter(schoolID, id),
		bson.M{"$set": bson.M{"payment_reference": reference}})
	if err != nil {
		return fmt.Errorf("set payment reference: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) MarkPaidByReference(ctx context.Context, reference string) error {
	// Single conditional update: only a pending student transitions.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"payment_reference": reference, "status": string(domain.StatusPending)},
		bson.M{"$set": bson.M{"status": string(domain.StatusPaid)}})
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No pending match: either the student is already paid (idempotent
	// success) or the reference is unknown.
	count, err := r.coll.CountDocuments(ctx, bson.M{"payment_reference": reference})
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if count == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func docToStudent(doc studentDoc) (*domain.Student, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse student id %q: %w", doc.ID, err)
	}
	schoolID, err := uuid.Parse(doc.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("parse school id %q: %w", doc.SchoolID, err)
	}
	return &domain.Student{
		ID:               id,
		SchoolID:         schoolID,
		FirstName:        doc.FirstName,
		LastName:         doc.LastName,
		Email:            doc.Email,
		Department:       doc.Department,
		Status:           domain.PaymentStatus(doc.Status),
		PaymentReference: doc.PaymentReference,
		CreatedAt:        unixToTime(doc.CreatedAt),
	}, nil
}
