package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sereno/config"
	"sereno/db"
	"sereno/models"
	"sereno/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	email := flag.String("email", "", "User email (required)")
	password := flag.String("password", "", "User password (required)")
	name := flag.String("name", "", "Full name (required)")
	age := flag.Int("age", 0, "User age (optional)")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Println("Error: email, password, and name are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.MongoClient.Disconnect(context.Background())

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err = db.UserCollection.FindOne(dbCtx, bson.M{"email": *email}).Decode(&existing)
	if err == nil {
		log.Fatalf("User with email %s already exists", *email)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Database error: %v", err)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		Email:     *email,
		FullName:  *name,
		Password:  hashed,
		Age:       *age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := db.UserCollection.InsertOne(dbCtx, user)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully!\n")
	fmt.Printf("   ID: %s\n", result.InsertedID)
	fmt.Printf("   Email: %s\n", *email)
	fmt.Printf("   Name: %s\n", *name)
}
