package main

import (
	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/log"
	"github.com/jngcii/helpmycode/router"
)

// helpmycode 后端服务入口
// 算法题解共享平台: 用户在小组内共享题解(solution)与提问(question)
func main() {
	// 初始化日志
	if err := log.Init(false); err != nil { // false 表示开发模式
		panic(err)
	}
	defer log.Sync()
	log.L().Info("The helpmycode server has runned!")

	// 配置初始化-依次连接 MySQL / Redis 并执行迁移
	config.InitConfig()

	r := router.SetupRouter() // 单独的路由设置
	port := config.GetPort()  // 获取端口-这里config是包名
	r.Run(port)               // 监听端口并启动服务
}
