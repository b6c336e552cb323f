package config

import (
	"sync"
	"time"

	"github.com/jngcii/helpmycode/models"

	"golang.org/x/time/rate"

	lru "github.com/hashicorp/golang-lru/v2" //本质上是双向链表+Hash表
)

const defaultUserCacheSize = 1024

var (
	// 全局LRU缓存实例-鉴权中间件用 username 查用户时先走这里
	LocalUserCache *lru.Cache[string, models.Users]
	cacheOnce      sync.Once //确保其只执行一次即可
	// 登录令牌限流器
	cleanupOnce   sync.Once
	LoginAttempts = sync.Map{}
)

func initUserCache(size int) {
	if size <= 0 {
		size = defaultUserCacheSize
	}
	cacheOnce.Do(func() {
		cache, err := lru.New[string, models.Users](size)
		if err != nil {
			panic(err)
		}
		LocalUserCache = cache
	})
}

// InitUserCache 暴露给测试使用
func InitUserCache(size int) { initUserCache(size) }

// ClearUserCache 用户登出或信息变更时清理本地缓存
func ClearUserCache(username string) {
	if LocalUserCache != nil {
		LocalUserCache.Remove(username)
	}
}

// GetLoginLimiter 每个用户名一个限流器: 每3秒1个令牌,突发5次
func GetLoginLimiter(username string) *rate.Limiter {
	ensureCleanupRunning()
	v, _ := LoginAttempts.LoadOrStore(username, rate.NewLimiter(rate.Every(3*time.Second), 5))
	return v.(*rate.Limiter)
}

func ensureCleanupRunning() {
	cleanupOnce.Do(func() {
		go cleanupOldLimiters()
	})
}

// 清理长时间没有登录尝试的限流器,防止map无限增长
func cleanupOldLimiters() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		LoginAttempts.Range(func(key, value interface{}) bool {
			limiter := value.(*rate.Limiter)
			// 令牌桶满了5分钟以上说明没人再用
			if limiter.TokensAt(time.Now().Add(-5*time.Minute)) == float64(limiter.Burst()) {
				LoginAttempts.Delete(key)
			}
			return true
		})
	}
}
