package router

//路由组-分组
import (
	"github.com/jngcii/helpmycode/controllers"
	"github.com/jngcii/helpmycode/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.GinLogger(), middlewares.GinRecovery())

	// 公开接口
	auth := r.Group("/api/auth") //给出路由组的路径
	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)
	auth.POST("/logout", controllers.Logout)

	// 受保护的 API（数据接口，需要登录）
	api := r.Group("/api", middlewares.AuthMiddleWare())
	{
		// 基本信息获取模块
		api.GET("/me", controllers.GetUserName)

		// 题目与小组模块
		api.GET("/origins", controllers.GetOriginProbs)
		api.POST("/origins", controllers.CreateOriginProb)
		api.GET("/problems", controllers.GetMyProblems)
		api.POST("/problems", controllers.TrackProblem)
		api.GET("/groups", controllers.GetGroups)
		api.POST("/groups", controllers.CreateGroup)
		api.PUT("/groups/:id/problems", controllers.AddProblemToGroup)

		// 题解/提问查询模块-列表带可见性过滤
		api.GET("/origins/:originId/solutions", controllers.GetProblemsSolutions)
		api.GET("/origins/:originId/questions", controllers.GetProblemsQuestions)
		api.GET("/users/:username/solutions", controllers.GetUserSolutions)
		api.GET("/users/:username/questions", controllers.GetUserQuestions)
		api.GET("/questions", controllers.GetAllQuestions)
		api.GET("/questions/search/:txt", controllers.SearchQuestions)
		api.GET("/solutions/:id", controllers.GetSolution)
		api.GET("/solutions/:id/counts", controllers.GetSolutionCounts)

		// 题解写操作模块
		api.POST("/solutions", controllers.CreateSolution)
		api.PUT("/solutions", controllers.UpdateSolution)
		api.DELETE("/solutions", controllers.DeleteSolution)

		// 切换模块-点赞与浏览计数
		api.GET("/solutions/:id/view", controllers.ViewCount)
		api.GET("/solutions/:id/like", controllers.LikeSolution)
		api.GET("/comments/:id/like", controllers.LikeComment)

		// 评论模块
		api.GET("/solutions/:id/comments", controllers.GetComments)
		api.GET("/comments/:id/likes", controllers.GetCommentLikes)
		api.POST("/comments", controllers.CreateComment)
		api.PUT("/comments", controllers.UpdateComment)
		api.DELETE("/comments", controllers.DeleteComment)

		// 楼中楼模块
		api.GET("/comments/:id/subcomments", controllers.GetSubComments)
		api.POST("/subcomments", controllers.CreateSubComment)
		api.PUT("/subcomments", controllers.UpdateSubComment)
		api.DELETE("/subcomments", controllers.DeleteSubComment)
	}

	return r //返回路由组
}
