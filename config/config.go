package config // 建立包

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const Version string = "0.0.1"

type Config struct { //标明这个配置文件是可以全局使用的
	App struct {
		Name string
		Port string
	}
	Database struct {
		Dsn                  string
		MaxIdleConns         int
		MaxOpenConns         int
		ConnMaxLifetimeHours int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	Cache struct {
		UserCacheSize int
	}
}

var AppConfig *Config //配置句柄-指针全局可以修改并且避免拷贝

// 使用viper读取配置文件
func InitConfig() {
	viper.SetConfigName("config") //无extension
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil { //将配置文件中的内容解析到结构体中
		log.Fatalf("Error unmarshalling config file: %v", err)
	}
	initDB()
	initRedis()
	initUserCache(AppConfig.Cache.UserCacheSize)
	runMigrations()
	printURL()
}

func GetPort() string {
	if AppConfig == nil || AppConfig.App.Port == "" { //要么配置为空要么端口无
		log.Println("Warning: Port is not set in config file, using default port 8080")
		return ":8080"
	}
	// 确保端口格式正确
	port := AppConfig.App.Port
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func printURL() {
	fmt.Printf("Login:http://localhost%s/api/auth/login\n", GetPort())
}
