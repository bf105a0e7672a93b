package utils

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

// TokenTTL is the fixed lifetime of an issued credential.
const TokenTTL = 30 * 24 * time.Hour

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(bson.NewObjectID().Hex()), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// RejectPassword costs as much as CheckPassword against a real account and
// always fails. Login runs it for unknown emails.
func RejectPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(dummyHash(), []byte(password)); err != nil {
		return err
	}
	return bcrypt.ErrMismatchedHashAndPassword
}

type Claims struct {
	UserID  string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, userID string, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken checks signature, algorithm and expiry.
func ValidateToken(tokenStr string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ParseObjectID accepts a hex id and reports whether it was well formed.
func ParseObjectID(hex string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}

func GenerateSlug(name string) string {
	// Normalize accents
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue // remove accent marks
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(b.String())
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// BindJSON binds and validates the body, turning binding failures into a
// ValidationError with a readable message.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return ValidationError(bindingMessage(err))
	}
	return nil
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "min", "gte":
			return field + " must be at least " + fe.Param()
		case "gt":
			return field + " must be greater than " + fe.Param()
		case "max", "lte":
			return field + " must be at most " + fe.Param()
		case "email":
			return field + " must be a valid email"
		case "climate", "soiltype", "rainseason", "paymentmethod", "orderstatus", "oneof":
			return field + " has an unsupported value"
		case "objectid":
			return field + " must be a valid id"
		default:
			return field + " is invalid"
		}
	}
	return "invalid request body"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
