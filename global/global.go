package global

// 供后端代码的全局变量使用
import (
	"github.com/go-redis/redis"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	DB      *gorm.DB // 数据库连接
	RedisDB *redis.Client
	// 计数查询的并行组-并发的同一题解计数只查一次库
	CountGroup singleflight.Group
)
