package middlewares

import (
	"net/http"
	"strings"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/gin-gonic/gin"
)

// 自定义中间件-解析JWT并把当前用户放进上下文
// 后续 handler 一律通过 c.GetUint("user_id") 取请求者身份,不使用任何全局的"当前用户"状态
func AuthMiddleWare() gin.HandlerFunc { //返回的是gin下的函数类型
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization")) // 这里的键是Authorization
		if token == "" {
			if ck, err := c.Cookie(utils.CookieName); err == nil {
				token = ck
			}
		}
		// 去掉 "Bearer " 前缀（如果存在）
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		username, _, err := utils.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		// 先查本地LRU,未命中再查库
		var u models.Users
		cached := false
		if config.LocalUserCache != nil {
			if hit, ok := config.LocalUserCache.Get(username); ok {
				u = hit
				cached = true
			}
		}
		if !cached {
			if err := global.DB.Select("id", "username").
				Where("username = ?", username). //where限定条件
				First(&u).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				c.Abort()
				return
			}
			if config.LocalUserCache != nil {
				config.LocalUserCache.Add(username, u)
			}
		}

		c.Set("user_id", u.ID)
		c.Set("username", username)
		c.Next() //调用下列的函数
	}
}
