package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const (
	principalsCollection      = "principals"
	senderProfilesCollection  = "sender_profiles"
	carrierProfilesCollection = "carrier_profiles"
)

// PrincipalRepository implements ports.UserDirectory on MongoDB. Principals
// and role profiles live in separate collections and are written together
// inside a transaction, which requires a replica set deployment.
type PrincipalRepository struct {
	client     *mongo.Client
	principals *mongo.Collection
	senders    *mongo.Collection
	carriers   *mongo.Collection
}

func NewPrincipalRepository(db *mongo.Database) *PrincipalRepository {
	return &PrincipalRepository{
		client:     db.Client(),
		principals: db.Collection(principalsCollection),
		senders:    db.Collection(senderProfilesCollection),
		carriers:   db.Collection(carrierProfilesCollection),
	}
}

type mongoPrincipal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

type mongoSenderProfile struct {
	PrincipalID  primitive.ObjectID `bson:"principal_id"`
	BusinessName string             `bson:"business_name"`
	TaxReference string             `bson:"tax_reference"`
	PostalCode   string             `bson:"postal_code"`
}

type mongoCarrierProfile struct {
	PrincipalID primitive.ObjectID `bson:"principal_id"`
	CompanyName string             `bson:"company_name"`
	PostalCode  string             `bson:"postal_code"`
}

// CreateWithProfile inserts the principal and its role profile atomically.
// The unique index on email turns a lost race into domain.ErrEmailInUse.
func (r *PrincipalRepository) CreateWithProfile(ctx context.Context, p *domain.Principal, profile ports.ProfileBuilder) (*domain.Principal, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	doc := toMongoPrincipal(p)
	doc.ID = primitive.NewObjectID()

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.principals.InsertOne(sc, doc); err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, nil
		}
		return nil, r.insertProfile(sc, doc.ID, profile(doc.ID.Hex()))
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("create principal: %w", err)
	}

	return fromMongoPrincipal(doc), nil
}

func (r *PrincipalRepository) insertProfile(ctx context.Context, principalID primitive.ObjectID, profile domain.RoleProfile) error {
	var err error
	switch p := profile.(type) {
	case nil:
		return nil
	case domain.SenderProfile:
		_, err = r.senders.InsertOne(ctx, mongoSenderProfile{
			PrincipalID:  principalID,
			BusinessName: p.BusinessName,
			TaxReference: p.TaxReference,
			PostalCode:   p.PostalCode,
		})
	case domain.CarrierProfile:
		_, err = r.carriers.InsertOne(ctx, mongoCarrierProfile{
			PrincipalID: principalID,
			CompanyName: p.CompanyName,
			PostalCode:  p.PostalCode,
		})
	default:
		return fmt.Errorf("unsupported role profile %T", profile)
	}
	if err != nil {
		return fmt.Errorf("insert %s profile: %w", profile.ProfileRole(), err)
	}
	return nil
}

func (r *PrincipalRepository) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPrincipal
	if err := r.principals.FindOne(ctx, bson.M{"email": email}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}
	return fromMongoPrincipal(mp), nil
}

// List returns principals ordered by creation time, newest first.
func (r *PrincipalRepository) List(ctx context.Context, filter ports.ListPrincipalsFilter) ([]*domain.Principal, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}

	total, err := r.principals.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count principals: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit)).
		SetProjection(bson.M{"password_hash": 0})

	cur, err := r.principals.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list principals: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPrincipal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode principals: %w", err)
	}

	out := make([]*domain.Principal, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromMongoPrincipal(d))
	}
	return out, total, nil
}

// EnsureIndexes creates the unique email index and the one-to-one profile
// indexes.
func (r *PrincipalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.principals.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("principal indexes: %w", err)
	}

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "principal_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{r.senders, r.carriers} {
		if _, err := coll.Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("%s indexes: %w", coll.Name(), err)
		}
	}
	return nil
}

func toMongoPrincipal(p *domain.Principal) mongoPrincipal {
	return mongoPrincipal{
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Role:         string(p.Role),
		Phone:        p.Phone,
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
	}
}

func fromMongoPrincipal(mp mongoPrincipal) *domain.Principal {
	return &domain.Principal{
		ID:           mp.ID.Hex(),
		Name:         mp.Name,
		Email:        mp.Email,
		PasswordHash: mp.PasswordHash,
		Role:         domain.Role(mp.Role),
		Phone:        mp.Phone,
		CreatedAt:    unixToTime(mp.CreatedAt),
		UpdatedAt:    unixToTime(mp.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
