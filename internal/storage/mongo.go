package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/contactkeeper/internal/models"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	contactsCollection = "contacts"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Date     time.Time          `bson:"date"`
}

func (d *userDocument) toModel() *usermodel.User {
	return &usermodel.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.Date.UTC(),
	}
}

type contactDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	User  primitive.ObjectID `bson:"user"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Phone string             `bson:"phone"`
	Type  string             `bson:"type"`
	Date  time.Time          `bson:"date"`
}

func (d *contactDocument) toModel() *models.Contact {
	return &models.Contact{
		ID:        d.ID.Hex(),
		UserID:    d.User.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Type:      d.Type,
		CreatedAt: d.Date.UTC(),
	}
}

// MongoStorage keeps users and contacts as documents, the layout the original
// contact keeper used: ObjectID keys and a "user" reference on each contact.
type MongoStorage struct {
	users    *mongo.Collection
	contacts *mongo.Collection
}

func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{
		users:    db.Collection(usersCollection),
		contacts: db.Collection(contactsCollection),
	}
}

// EnsureIndexes creates the unique email index and the per-user listing index.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = s.contacts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create contacts index: %w", err)
	}

	return nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	doc := userDocument{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: passwordHash,
		Date:     time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	var doc userDocument
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err = s.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) ListByUserID(ctx context.Context, userID string) ([]*models.Contact, error) {
	contacts := make([]*models.Contact, 0)

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return contacts, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.contacts.Find(ctx, bson.M{"user": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc contactDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode contact: %w", err)
		}
		contacts = append(contacts, doc.toModel())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

func (s *MongoStorage) CreateContact(ctx context.Context, userID string, fields models.ContactFields) (*models.Contact, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: invalid owner id %q", userID)
	}

	doc := contactDocument{
		ID:    primitive.NewObjectID(),
		User:  owner,
		Name:  fields.Name,
		Email: fields.Email,
		Phone: fields.Phone,
		Type:  fields.Type,
		Date:  time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.contacts.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(contactID)
	if err != nil {
		return nil, nil
	}

	var doc contactDocument
	err = s.contacts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) UpdateContact(ctx context.Context, contactID string, fields models.ContactFields) (*models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(contactID)
	if err != nil {
		return nil, nil
	}

	set := contactSetDocument(fields)
	if len(set) == 0 {
		return s.GetContact(ctx, contactID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc contactDocument
	err = s.contacts.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) DeleteContact(ctx context.Context, contactID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(contactID)
	if err != nil {
		return false, nil
	}

	res, err := s.contacts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}

	return res.DeletedCount > 0, nil
}

// contactSetDocument builds the $set body; "user" is never part of it.
func contactSetDocument(fields models.ContactFields) bson.M {
	set := bson.M{}
	if fields.Name != "" {
		set["name"] = fields.Name
	}
	if fields.Email != "" {
		set["email"] = fields.Email
	}
	if fields.Phone != "" {
		set["phone"] = fields.Phone
	}
	if fields.Type != "" {
		set["type"] = fields.Type
	}
	return set
}
