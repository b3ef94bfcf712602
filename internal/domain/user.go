package domain

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinPasswordLen is the minimum plaintext password length accepted at
// signup and profile update.
const MinPasswordLen = 7

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserID is a value object for user identity.
type UserID struct{ primitive.ObjectID }

// NewUserID creates a UserID from a document object id.
func NewUserID(id primitive.ObjectID) UserID { return UserID{ObjectID: id} }

// ParseUserID parses the hex form used in URLs and token subjects.
func ParseUserID(s string) (UserID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{ObjectID: oid}, nil
}

// String returns the canonical hex form.
func (u UserID) String() string { return u.ObjectID.Hex() }

// User is an account together with its active login sessions. Each
// element of SessionTokens is one currently-valid bearer token, in
// login order. The plaintext password is never stored.
type User struct {
	ID            UserID
	Name          string
	Email         string
	PasswordHash  string
	Age           int
	SessionTokens []string
	Avatar        []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasSessionToken reports whether token is one of the user's active
// sessions.
func (u *User) HasSessionToken(token string) bool {
	for _, t := range u.SessionTokens {
		if t == token {
			return true
		}
	}
	return false
}

// UserFields is the user-supplied part of a User. Password is plaintext
// here; it is hashed before persistence.
type UserFields struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// Normalize trims all text fields and lowercases the email.
func (f UserFields) Normalize() UserFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
	return f
}

// Problems validates every field and returns all failures at once. An
// empty result means the fields are acceptable.
func (f UserFields) Problems() []string {
	var problems []string
	if f.Name == "" {
		problems = append(problems, "name is required")
	}
	if !emailRegex.MatchString(f.Email) {
		problems = append(problems, "email is invalid")
	}
	problems = append(problems, PasswordProblems(f.Password)...)
	if f.Age < 0 {
		problems = append(problems, "age must be a positive number")
	}
	return problems
}

// PasswordProblems validates a plaintext password on its own, for
// profile updates that change only the password.
func PasswordProblems(password string) []string {
	var problems []string
	if len(password) < MinPasswordLen {
		problems = append(problems, "password must be at least 7 characters")
	}
	if strings.Contains(strings.ToLower(password), "password") {
		problems = append(problems, `password cannot contain "password"`)
	}
	return problems
}
