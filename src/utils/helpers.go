package utils

import (
	"booktrack/src/models"
	"booktrack/src/types"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func GenerateJWT(secret []byte, user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// MinorUnits converts a decimal amount to integer cents, rounding half up.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// AverageRating returns the mean rating rounded to one decimal place and the
// review count. No reviews reports 0.
func AverageRating(reviews []models.Review) (float64, int) {
	count := len(reviews)
	if count == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10, count
}
