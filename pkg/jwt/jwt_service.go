package jwt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"yammiverse-backend/domain"
	"yammiverse-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, error)
		GenerateResetToken(email string, duration time.Duration) (string, error)
		GetEmailByResetToken(token string) (string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		jwt.RegisteredClaims
	}

	jwtResetClaim struct {
		Email   string `json:"email"`
		Purpose string `json:"purpose"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

const resetPurpose = "password_reset"

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "YAMMIVERSE",
	}
}

func (j *jwtService) GenerateTokenUser(userID string) string {
	claims := jwtUserClaim{
		userID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 120)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	return claims.UserID, nil
}

// GenerateResetToken issues the short-lived token handed out after a
// successful OTP verification. The email it was issued for rides along in the
// claims so the reset step can cross-check it.
func (j *jwtService) GenerateResetToken(email string, duration time.Duration) (string, error) {
	claims := jwtResetClaim{
		email,
		resetPurpose,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) GetEmailByResetToken(token string) (string, error) {
	t_Token, err := jwt.ParseWithClaims(token, &jwtResetClaim{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrResetTokenExpired
		}
		return "", domain.ErrInvalidResetToken
	}
	if !t_Token.Valid {
		return "", domain.ErrInvalidResetToken
	}

	claims := t_Token.Claims.(*jwtResetClaim)
	if claims.Purpose != resetPurpose {
		return "", domain.ErrInvalidResetToken
	}
	return claims.Email, nil
}
