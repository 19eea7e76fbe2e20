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

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const collectionClients = "clients"

// ClientRepository implements ports.ClientRepository using MongoDB.
type ClientRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients), now: time.Now}
}

type mongoClient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Deadline  string             `bson:"deadline"`
	Contact   string             `bson:"contact"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	GST       string             `bson:"gst"`
	Address   string             `bson:"address,omitempty"`
	Payment   string             `bson:"payment"`
	Invoice   string             `bson:"invoice,omitempty"`
	LR        string             `bson:"lr,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toMongoClient(c *domain.Client) mongoClient {
	return mongoClient{
		Name:      c.Name,
		Deadline:  c.Deadline,
		Contact:   c.Contact,
		Email:     c.Email,
		Phone:     c.Phone,
		GST:       c.GST,
		Address:   c.Address,
		Payment:   string(c.Payment),
		Invoice:   c.Invoice,
		LR:        c.LR,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Deadline:  m.Deadline,
		Contact:   m.Contact,
		Email:     m.Email,
		Phone:     m.Phone,
		GST:       m.GST,
		Address:   m.Address,
		Payment:   domain.PaymentStatus(m.Payment),
		Invoice:   m.Invoice,
		LR:        m.LR,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create inserts a new client document and sets c.ID.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoClient(c))
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoClient
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return m.toDomain(), nil
}

// List returns the clients matching filter. Deadlines are stored as strings,
// so the deadline sort is lexical, which orders ISO dates correctly.
func (r *ClientRepository) List(ctx context.Context, filter ports.ListClientsFilter) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Payment != "" {
		query["payment"] = filter.Payment
	}
	if filter.GST != "" {
		query["gst"] = filter.GST
	}

	opts := options.Find()
	if filter.SortByDeadline {
		opts.SetSort(bson.D{{Key: "deadline", Value: 1}})
	}

	return r.find(ctx, query, opts)
}

func (r *ClientRepository) FindUnpaid(ctx context.Context) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"payment": string(domain.PaymentNotPaid)}, options.Find())
}

func (r *ClientRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Client, error) {
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoClient
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	clients := make([]*domain.Client, 0, len(docs))
	for _, d := range docs {
		clients = append(clients, d.toDomain())
	}
	return clients, nil
}

// Update sets the non-nil fields and returns the document after the update.
func (r *ClientRepository) Update(ctx context.Context, id string, u ports.ClientUpdate) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": r.now().UTC()}
	setIf(set, "name", u.Name)
	setIf(set, "deadline", u.Deadline)
	setIf(set, "contact", u.Contact)
	setIf(set, "email", u.Email)
	setIf(set, "phone", u.Phone)
	setIf(set, "gst", u.GST)
	setIf(set, "address", u.Address)
	setIf(set, "invoice", u.Invoice)
	setIf(set, "lr", u.LR)
	if u.Payment != nil {
		set["payment"] = string(*u.Payment)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoClient
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoClient
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("delete client: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) CountByPayment(ctx context.Context) (ports.PaymentCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	paid, err := r.col.CountDocuments(ctx, bson.M{"payment": string(domain.PaymentPaid)})
	if err != nil {
		return ports.PaymentCounts{}, fmt.Errorf("count paid: %w", err)
	}
	notPaid, err := r.col.CountDocuments(ctx, bson.M{"payment": string(domain.PaymentNotPaid)})
	if err != nil {
		return ports.PaymentCounts{}, fmt.Errorf("count not paid: %w", err)
	}
	return ports.PaymentCounts{Paid: paid, NotPaid: notPaid}, nil
}

// EnsureIndexes creates necessary indexes on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "payment", Value: 1}, {Key: "deadline", Value: 1}}},
		{Keys: bson.D{{Key: "gst", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func setIf(set bson.M, field string, v *string) {
	if v != nil {
		set[field] = *v
	}
}
