package utils

import (
	"context"
	"time"

	"sereno/db"
	"sereno/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetUserByEmail looks up a user record by email
func GetUserByEmail(email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
