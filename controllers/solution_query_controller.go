package controllers

// 题解/提问的只读查询-小组范围的列表都先套可见性过滤
import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func preloadMini(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Preload("Origin")
}

// 小组范围列表的公共路径: 可见性集合 + solved过滤 + 原始题目过滤
func listByOriginAndSolved(c *gin.Context, solved bool) {
	userID := c.GetUint("user_id")

	originID, err := strconv.ParseUint(c.Param("originId"), 10, 32)
	if err != nil || originID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid origin id"})
		return
	}
	var origin models.OriginProb
	if err := global.DB.First(&origin, originID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "origin problem not found"})
		return
	}

	visible, err := models.VisibleUserIDs(global.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var solutions []models.Solution
	if err := preloadMini(global.DB).
		Where("origin_id = ? AND solved = ? AND user_id IN ?", origin.ID, solved, visible).
		Find(&solutions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]MiniSolutionResp, 0, len(solutions))
	for i := range solutions {
		out = append(out, toMiniSolution(&solutions[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetProblemsSolutions 某原始题目下、可见范围内的全部题解
func GetProblemsSolutions(c *gin.Context) { listByOriginAndSolved(c, true) }

// GetProblemsQuestions 某原始题目下、可见范围内的全部提问
func GetProblemsQuestions(c *gin.Context) { listByOriginAndSolved(c, false) }

// 按用户名直查-有意不做可见性过滤(跨组直查指定用户是平台的既定行为)
func listByUsernameAndSolved(c *gin.Context, solved bool) {
	username := c.Param("username")

	var user models.Users
	if err := global.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var solutions []models.Solution
	if err := preloadMini(global.DB).
		Where("user_id = ? AND solved = ?", user.ID, solved).
		Find(&solutions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]MiniSolutionResp, 0, len(solutions))
	for i := range solutions {
		out = append(out, toMiniSolution(&solutions[i]))
	}
	c.JSON(http.StatusOK, out)
}

func GetUserSolutions(c *gin.Context) { listByUsernameAndSolved(c, true) }
func GetUserQuestions(c *gin.Context) { listByUsernameAndSolved(c, false) }

// GetAllQuestions 可见范围内的全部提问
func GetAllQuestions(c *gin.Context) {
	userID := c.GetUint("user_id")

	visible, err := models.VisibleUserIDs(global.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var solutions []models.Solution
	if err := preloadMini(global.DB).
		Where("solved = ? AND user_id IN ?", false, visible).
		Find(&solutions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]MiniSolutionResp, 0, len(solutions))
	for i := range solutions {
		out = append(out, toMiniSolution(&solutions[i]))
	}
	c.JSON(http.StatusOK, out)
}

// SearchQuestions 提问搜索: 题目标题的大小写不敏感子串匹配;
// 搜索词为纯数字时额外按题号精确匹配,两路结果按题解id去重合并
func SearchQuestions(c *gin.Context) {
	userID := c.GetUint("user_id")
	txt := c.Param("txt")

	visible, err := models.VisibleUserIDs(global.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var byTitle []models.Solution
	if err := preloadMini(global.DB).
		Joins("JOIN origin_probs ON origin_probs.id = solutions.origin_id").
		Where("solutions.user_id IN ? AND solutions.solved = ?", visible, false).
		Where("LOWER(origin_probs.title) LIKE ?", "%"+strings.ToLower(txt)+"%").
		Find(&byTitle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	merged := byTitle
	seen := make(map[uint]bool, len(byTitle))
	for i := range byTitle {
		seen[byTitle[i].ID] = true
	}

	if utils.IsDigits(txt) {
		number, _ := strconv.Atoi(txt)
		var byNumber []models.Solution
		if err := preloadMini(global.DB).
			Joins("JOIN origin_probs ON origin_probs.id = solutions.origin_id").
			Where("solutions.user_id IN ? AND solutions.solved = ?", visible, false).
			Where("origin_probs.number = ?", number).
			Find(&byNumber).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for i := range byNumber {
			if !seen[byNumber[i].ID] {
				seen[byNumber[i].ID] = true
				merged = append(merged, byNumber[i])
			}
		}
	}

	out := make([]MiniSolutionResp, 0, len(merged))
	for i := range merged {
		out = append(out, toMiniSolution(&merged[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetSolution 单条查看-不做可见性过滤
func GetSolution(c *gin.Context) {
	solutionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || solutionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	var solution models.Solution
	if err := preloadMini(global.DB).First(&solution, solutionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		return
	}

	resp, err := buildSolutionDetail(&solution)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

type SolutionCountResp struct {
	View  uint  `json:"view"`
	Likes int64 `json:"likes"`
}

// GetSolutionCounts 题解的浏览/点赞计数
// 前端会轮询这个接口,所以走redis缓存,并用singleflight压并发
func GetSolutionCounts(c *gin.Context) {
	solutionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || solutionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	key := fmt.Sprintf(config.RedisCountKey, solutionID)
	v, err, _ := global.CountGroup.Do(key, func() (interface{}, error) {
		// 先看缓存
		var cached SolutionCountResp
		if raw, err := global.RedisDB.Get(key).Bytes(); err == nil {
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}

		var solution models.Solution
		if err := global.DB.Select("id, view").First(&solution, solutionID).Error; err != nil {
			return nil, errSolutionNotFound
		}
		var likes int64
		if err := global.DB.Model(&models.SolutionLike{}).
			Where("solution_id = ?", solutionID).
			Count(&likes).Error; err != nil {
			return nil, err
		}

		resp := &SolutionCountResp{View: solution.View, Likes: likes}
		if raw, err := json.Marshal(resp); err == nil {
			global.RedisDB.Set(key, raw, config.CountTTL) // 尽力缓存,允许失败
		}
		return resp, nil
	})
	if err != nil {
		if err == errSolutionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, v.(*SolutionCountResp))
}
