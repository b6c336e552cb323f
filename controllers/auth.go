package controllers

// auth 身份认证-注册/登录/登出
import (
	"net/http"
	"time"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/gin-gonic/gin"
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) { //对应的注册函数
	var in RegisterDTO
	if err := c.ShouldBindJSON(&in); err != nil { // 请求体是Body
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hashedPwd, err := utils.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user := models.Users{Username: in.Username, Password: hashedPwd}
	if err := global.DB.Create(&user).Error; err != nil {
		// 用户名唯一约束冲突也会落到这里
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		return
	}
	// 注意这里只有密码完成之后才可以进行JWT操作
	token, err := utils.GenerateJWT(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.SetAuthCookie(c, token, utils.Expire_hours*time.Hour)
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func Login(c *gin.Context) {
	var in LoginDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 登录限流-按用户名
	limiter := config.GetLoginLimiter(in.Username)
	if !limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		return
	}

	var user models.Users
	if err := global.DB.Where("username = ?", in.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if !utils.CheckPassword(user.Password, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := utils.GenerateJWT(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.SetAuthCookie(c, token, utils.Expire_hours*time.Hour)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func Logout(c *gin.Context) {
	// cookie里还有token的话顺带清掉本地用户缓存
	if ck, err := c.Cookie(utils.CookieName); err == nil {
		if username, _, err := utils.ParseJWT(ck); err == nil {
			config.ClearUserCache(username)
		}
	}
	utils.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// 基本信息获取
func GetUserName(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
}
