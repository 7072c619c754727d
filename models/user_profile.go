package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID     string `dynamodbav:"userId" json:"userId"`
	Name       string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email      string `dynamodbav:"email,omitempty" json:"email,omitempty"`
	University string `dynamodbav:"university,omitempty" json:"university,omitempty"`
	Course     string `dynamodbav:"course,omitempty" json:"course,omitempty"`
	AvatarURL  string `dynamodbav:"avatarURL,omitempty" json:"avatarURL,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
