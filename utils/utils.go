package utils

// 辅助工具函数-JWT与密码哈希
import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	cipher_number = 12 //bcrypt代价因子
	Expire_hours  = 72
)

// 生产环境: 把 secret 放到配置/环境变量里
var jwtSecret = []byte("helpmycode-secret")

func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), cipher_number)
	return string(hash), err
}

func CheckPassword(hash, pwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}

func GenerateJWT(username string) (string, error) {
	// 用 MapClaims 时，直接传入 jwt.MapClaims{...}
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Duration(Expire_hours) * time.Hour).Unix(), // 过期时间（秒）
		"iat":      time.Now().Unix(),                                              // 签发时间
		"nbf":      time.Now().Unix(),                                              // 生效时间
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret)
	return "Bearer " + signedToken, err // 注意 Bearer 后面要有空格
}

// 因为这里我们的token包含了username信息
func ParseJWT(tk string) (string, int64, error) {
	tk = strings.TrimSpace(tk)
	low := strings.ToLower(tk)
	if strings.HasPrefix(low, "bearer ") {
		tk = strings.TrimSpace(tk[7:]) //7-前缀长度
	}
	if tk == "" {
		return "", 0, errors.New("empty token")
	}
	token, err := jwt.Parse(tk, func(token *jwt.Token) (interface{}, error) {
		// 固定算法族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok { //按照这个HMAC法解析
			return nil, jwt.ErrTokenUnverifiable
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", 0, err
	}
	//  用ok和valid看是否解析成功且声明存在
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		username, ok1 := claims["username"].(string) //获得其键值
		// exp 字段在 JSON 解析时会被解析为 float64
		var expireTime int64
		var ok2 bool
		if expFloat, ok := claims["exp"].(float64); ok {
			expireTime = int64(expFloat)
			ok2 = true
		}
		if !ok1 || !ok2 {
			return "", 0, errors.New("user's claim is not a string")
		}
		return username, expireTime, nil
	}
	return "", 0, errors.New("invalid token")
}
