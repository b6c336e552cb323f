package controllers

// 题解/提问的写操作
import (
	"fmt"
	"net/http"
	"time"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 创建对应的DTO
// solved用指针: binding的required对false值会误判,指针才能区分"没传"和"传了false"
type CreateSolutionDTO struct {
	Origin  uint    `json:"origin" binding:"required,min=1"`
	Code    string  `json:"code" binding:"required"`
	Lang    string  `json:"lang" binding:"required,oneof=c cpp java python javascript"`
	Solved  *bool   `json:"solved" binding:"required"`
	Caption *string `json:"caption"` // 仅solved时有意义,服务端不强制
}

// 更新的请求DTO-字段可选,表示"部分更新"
type UpdateSolutionDTO struct {
	ID      uint    `json:"id" binding:"required,min=1"`
	Code    *string `json:"code,omitempty"`
	Lang    *string `json:"lang,omitempty" binding:"omitempty,oneof=c cpp java python javascript"`
	Solved  *bool   `json:"solved,omitempty"`
	Caption *string `json:"caption,omitempty"`
	View    *uint   `json:"view,omitempty"`
}

type DeleteSolutionDTO struct {
	ID uint `json:"id" binding:"required,min=1"`
}

// CreateSolution 创建题解/提问
// solved=true 时顺带把创建者对应的刷题记录置为已解决(只翻一次,不会回退)
func CreateSolution(c *gin.Context) {
	userID := c.GetUint("user_id") // 中间件放进去的当前用户ID

	var in CreateSolutionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var origin models.OriginProb
	if err := global.DB.First(&origin, in.Origin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "origin problem not found"})
		return
	}

	// 服务端显式设置UserID,避免前端伪造
	solution := models.Solution{
		UserID:   userID,
		OriginID: origin.ID,
		Code:     in.Code,
		Lang:     in.Lang,
		Solved:   *in.Solved,
		Caption:  in.Caption,
	}

	// 事务: 创建题解 + 翻转刷题记录的is_solved
	err := global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&solution).Error; err != nil {
			return err
		}
		if solution.Solved {
			var problem models.Problem
			err := tx.Where("user_id = ? AND origin_id = ?", userID, origin.ID).
				First(&problem).Error
			if err != nil {
				// 没有对应的刷题记录就什么都不做
				if err == gorm.ErrRecordNotFound {
					return nil
				}
				return err
			}
			if !problem.IsSolved { // 幂等: 已解决的不再更新
				now := time.Now()
				if err := tx.Model(&problem).Updates(map[string]interface{}{
					"is_solved":   true,
					"solved_time": &now,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 回填存在性缓存
	global.RedisDB.Set(fmt.Sprintf(config.RedisSolutionKey, solution.ID), "1", config.SolutionTTL)

	// 详情里带上创建者用户名
	solution.Origin = &origin
	var creator models.Users
	if err := global.DB.Select("id, username").First(&creator, userID).Error; err == nil {
		solution.User = &creator
	}
	resp, err := buildSolutionDetail(&solution)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateSolution 只允许创建者更新-id与创建者一起查,查不到统一404
func UpdateSolution(c *gin.Context) {
	userID := c.GetUint("user_id")

	var in UpdateSolutionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	solution, err := findOwnSolution(in.ID, userID)
	if err != nil {
		if err == errSolutionNotFound || err == errNotCreator {
			// 不存在与无权限对外同样返回404
			c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// 只更新非nil的字段
	updates := map[string]interface{}{}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.Lang != nil {
		updates["lang"] = *in.Lang
	}
	if in.Solved != nil {
		updates["solved"] = *in.Solved
	}
	if in.Caption != nil {
		updates["caption"] = *in.Caption
	}
	if in.View != nil {
		updates["view"] = *in.View
	}
	if len(updates) > 0 {
		if err := global.DB.Model(solution).Updates(updates).Error; err != nil { // 会自动更新 UpdatedAt
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	// 返回更新后的详情
	var out models.Solution
	if err := preloadMini(global.DB).First(&out, solution.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp, err := buildSolutionDetail(&out)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSolution 只允许创建者删除-级联删掉评论/楼中楼/各级点赞
func DeleteSolution(c *gin.Context) {
	userID := c.GetUint("user_id")

	var in DeleteSolutionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	solution, err := findOwnSolution(in.ID, userID)
	if err != nil {
		if err == errSolutionNotFound || err == errNotCreator {
			c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	err = global.DB.Transaction(func(tx *gorm.DB) error {
		// 先收集评论id,再自底向上删
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("solution_id = ?", solution.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			var subCommentIDs []uint
			if err := tx.Model(&models.SubComment{}).
				Where("comment_id IN ?", commentIDs).
				Pluck("id", &subCommentIDs).Error; err != nil {
				return err
			}
			if len(subCommentIDs) > 0 {
				if err := tx.Where("sub_comment_id IN ?", subCommentIDs).
					Delete(&models.SubCommentLike{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", subCommentIDs).
					Delete(&models.SubComment{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).
				Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("solution_id = ?", solution.ID).
			Delete(&models.SolutionLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(solution).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 存在性缓存和计数缓存都失效
	global.RedisDB.Del(fmt.Sprintf(config.RedisSolutionKey, solution.ID))
	invalidateSolutionCounts(solution.ID)

	c.Status(http.StatusNoContent)
}
