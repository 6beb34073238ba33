package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 是用于签发和校验登录令牌的HMAC密钥。
// 如果配置中没有提供固定密钥，服务器会在启动时随机生成一个，
// 代价是重启后所有已签发的令牌全部失效。
var secretKey []byte

// Claims 定义了登录令牌中携带的数据。
// UserID 是用户的UUID，Role 冗余存储以便中间件快速判断权限。
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("无效的登录令牌")

// InitSecretKey 初始化令牌密钥。
// configuredSecret 为空时生成一个密码学安全的32字节随机密钥。
func InitSecretKey(configuredSecret string) {
	if configuredSecret != "" {
		secretKey = []byte(configuredSecret)
		fmt.Println("已从配置加载令牌密钥。")
		return
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("令牌密钥已成功生成（重启后已有令牌将失效）。")
}

// GenerateToken 为指定用户签发一个带过期时间的登录令牌。
func GenerateToken(userID string, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("无法签发登录令牌: %w", err)
	}
	return signed, nil
}

// ParseToken 校验令牌签名和有效期，并返回其中的Claims。
func ParseToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// 只接受HMAC签名，拒绝算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
