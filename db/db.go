package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"sereno/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var UserCollection *mongo.Collection
var AssessmentCollection *mongo.Collection

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "sereno"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "sereno"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "sereno"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	UserCollection = MongoDatabase.Collection("users")
	AssessmentCollection = MongoDatabase.Collection("assessments")
	return nil
}

// SaveAssessment stores a completed assessment record
func SaveAssessment(assessment *models.Assessment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = time.Now()
	}
	assessment.UpdatedAt = time.Now()

	result, err := AssessmentCollection.InsertOne(ctx, assessment)
	if err != nil {
		log.Printf("Error saving assessment: %v", err)
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		assessment.ID = id
	}
	return nil
}

// GetAssessmentHistory retrieves a user's assessments, newest first
func GetAssessmentHistory(userID primitive.ObjectID, limit int64) ([]models.Assessment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := AssessmentCollection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assessments []models.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}
