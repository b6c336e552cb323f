package controllers

// 点赞切换与浏览计数
import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ViewCount 浏览数无条件+1-不按访问者去重,并发丢失更新是已接受的限制
func ViewCount(c *gin.Context) {
	solutionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || solutionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	tx := global.DB.Model(&models.Solution{}).
		Where("id = ?", solutionID).
		UpdateColumn("view", gorm.Expr("view + ?", 1))
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": tx.Error.Error()})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		return
	}

	invalidateSolutionCounts(uint(solutionID))
	c.JSON(http.StatusOK, gin.H{"message": "view counted"})
}

// LikeSolution 点赞/取消点赞题解（切换）
// 纯集合翻转: 在集合里就移除,不在就加入
func LikeSolution(c *gin.Context) {
	userID := c.GetUint("user_id")

	solutionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || solutionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solution id"})
		return
	}

	// 题解存在性检验-走缓存
	exists, err := solutionExists(uint(solutionID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "solution not found"})
		return
	}

	var likeFlag bool
	var totalLikes int64
	// MySQL事务: 保证翻转和计数读取一致
	err = global.DB.Transaction(func(tx *gorm.DB) error {
		var likeRecord models.SolutionLike
		err := tx.Where("user_id = ? AND solution_id = ?", userID, solutionID).
			First(&likeRecord).Error

		if errors.Is(err, gorm.ErrRecordNotFound) { // 点赞
			likeFlag = true
			if err := tx.Create(&models.SolutionLike{
				UserID:     userID,
				SolutionID: uint(solutionID),
			}).Error; err != nil {
				return err
			}
		} else if err == nil { // 取消点赞
			likeFlag = false
			if err := tx.Delete(&likeRecord).Error; err != nil {
				return err
			}
		} else {
			return err
		}

		return tx.Model(&models.SolutionLike{}).
			Where("solution_id = ?", solutionID).
			Count(&totalLikes).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}

	invalidateSolutionCounts(uint(solutionID))

	c.JSON(http.StatusOK, gin.H{
		"like_flag":   likeFlag,
		"total_likes": totalLikes,
	})
}

// LikeComment 点赞/取消点赞评论（切换）
func LikeComment(c *gin.Context) {
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

	var likeFlag bool
	var totalLikes int64
	err = global.DB.Transaction(func(tx *gorm.DB) error {
		var likeRecord models.CommentLike
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			First(&likeRecord).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			likeFlag = true
			if err := tx.Create(&models.CommentLike{
				UserID:    userID,
				CommentID: uint(commentID),
			}).Error; err != nil {
				return err
			}
		} else if err == nil {
			likeFlag = false
			if err := tx.Delete(&likeRecord).Error; err != nil {
				return err
			}
		} else {
			return err
		}

		return tx.Model(&models.CommentLike{}).
			Where("comment_id = ?", commentID).
			Count(&totalLikes).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"like_flag":   likeFlag,
		"total_likes": totalLikes,
	})
}
