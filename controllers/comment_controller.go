package controllers

// 评论-更新/删除不校验创建者,沿用平台既定行为(与题解的权限规则不对称)
import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateCommentDTO struct {
	Solution uint   `json:"solution" binding:"required,min=1"`
	Message  string `json:"message" binding:"required,max=1000"`
}

type UpdateCommentDTO struct {
	ID      uint   `json:"id" binding:"required,min=1"`
	Message string `json:"message" binding:"required,max=1000"`
}

type DeleteCommentDTO struct {
	ID uint `json:"id" binding:"required,min=1"`
}

// GetComments 某条题解下的全部评论
func GetComments(c *gin.Context) {
	solutionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || solutionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	exists, err := solutionExists(uint(solutionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		return
	}

	var comments []models.Comment
	if err := global.DB.
		Where("solution_id = ?", solutionID).
		Order("created_at ASC"). //按创建时间升序
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username") // 预加载
		}).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	ids := make([]uint, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.ID)
	}
	likeMap, err := commentLikeCounts(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]CommentResp, 0, len(comments)) //DTO操作只返回所需的数据
	for _, cm := range comments {
		username := "unknown"
		if cm.User != nil {
			username = cm.User.Username
		}
		out = append(out, CommentResp{
			ID:       cm.ID,
			Message:  cm.Message,
			Username: username,
			Likes:    likeMap[cm.ID],
			Created:  cm.CreatedAt.Format(utils.FormatTime_specific),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetCommentLikes 单条评论的点赞数以及我是否赞过
func GetCommentLikes(c *gin.Context) {
	userID := c.GetUint("user_id")

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || commentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var comment models.Comment
	if err := global.DB.Select("id").First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	var likes int64
	if err := global.DB.Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&likes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var mine int64
	if err := global.DB.Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&mine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "liked": mine > 0})
}

// CreateComment 创建评论-10秒一条的防刷限制
func CreateComment(c *gin.Context) {
	userID := c.GetUint("user_id")
	userName := c.GetString("username")

	var in CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 防刷：限制用户评论频率（10秒/次）
	rateKey := fmt.Sprintf(config.RedisCommentRateKey, userID)
	if global.RedisDB.Exists(rateKey).Val() > 0 {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "commenting too frequently"})
		return
	}
	global.RedisDB.Set(rateKey, "1", config.CommentRateTTL)

	exists, err := solutionExists(in.Solution)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		return
	}

	comment := models.Comment{
		Message:    in.Message,
		UserID:     userID,
		SolutionID: in.Solution,
	}
	if err := global.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, CommentResp{
		ID:       comment.ID,
		Message:  comment.Message,
		Username: userName,
		Likes:    0,
		Created:  comment.CreatedAt.Format(utils.FormatTime_specific),
	})
}

// UpdateComment 任何登录用户都可改-平台既定行为
func UpdateComment(c *gin.Context) {
	var in UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment
	if err := global.DB.First(&comment, in.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	if err := global.DB.Model(&comment).Update("message", in.Message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID, "message": in.Message})
}

// DeleteComment 任何登录用户都可删-级联删掉楼中楼和点赞
func DeleteComment(c *gin.Context) {
	var in DeleteCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment
	if err := global.DB.First(&comment, in.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	err := global.DB.Transaction(func(tx *gorm.DB) error {
		var subCommentIDs []uint
		if err := tx.Model(&models.SubComment{}).
			Where("comment_id = ?", comment.ID).
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
		if err := tx.Where("comment_id = ?", comment.ID).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
