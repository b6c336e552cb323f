package config

import (
	"fmt"
	"time"

	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/log"

	"github.com/go-redis/redis"
	"go.uber.org/zap"
)

// 设置redis表的key
const (
	// 题解存在性缓存: "1"存在 "0"不存在
	RedisSolutionKey = "solution:%d:exists"
	// 题解计数缓存(view+likes 的JSON)
	RedisCountKey = "solution:%d:counts"
	// 评论限流key-10秒一条
	RedisCommentRateKey = "comment:rate:user:%d"
)

const (
	SolutionTTL    = 30 * time.Minute // 存在性缓存时间
	CountTTL       = 30 * time.Second // 计数缓存只存很短,容忍一点陈旧
	CommentRateTTL = 10 * time.Second
)

func initRedis() {
	RedisClient := redis.NewClient(&redis.Options{ //配置选项Options是结构体
		Addr:         AppConfig.Redis.Addr,
		DB:           AppConfig.Redis.DB,
		Password:     AppConfig.Redis.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  800 * time.Millisecond, // 读超时
		WriteTimeout: 800 * time.Millisecond, // 写超时
		PoolSize:     20,
		MinIdleConns: 5,
	}) //返回一个客户端
	_, err := RedisClient.Ping().Result()
	if err != nil {
		log.L().Error("Redis connection failed ,got error:", zap.Error(err))
	}
	global.RedisDB = RedisClient
	fmt.Println("2. Redis DataBase connection success!")
}
