package controllers

// 楼中楼-与评论的处理方式一致,更新/删除同样不校验创建者
import (
	"net/http"
	"strconv"

	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubCommentResp struct {
	ID       uint   `json:"id"`
	Message  string `json:"message"`
	Username string `json:"username"`
	Created  string `json:"created_at"`
}

type CreateSubCommentDTO struct {
	Comment uint   `json:"comment" binding:"required,min=1"`
	Message string `json:"message" binding:"required,max=1000"`
}

type UpdateSubCommentDTO struct {
	ID      uint   `json:"id" binding:"required,min=1"`
	Message string `json:"message" binding:"required,max=1000"`
}

type DeleteSubCommentDTO struct {
	ID uint `json:"id" binding:"required,min=1"`
}

// GetSubComments 某条评论下的全部楼中楼
func GetSubComments(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || commentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var comment models.Comment
	if err := global.DB.Select("id").First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	var subComments []models.SubComment
	if err := global.DB.
		Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Find(&subComments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sub comments"})
		return
	}

	out := make([]SubCommentResp, 0, len(subComments))
	for _, sc := range subComments {
		username := "unknown"
		if sc.User != nil {
			username = sc.User.Username
		}
		out = append(out, SubCommentResp{
			ID:       sc.ID,
			Message:  sc.Message,
			Username: username,
			Created:  sc.CreatedAt.Format(utils.FormatTime_specific),
		})
	}
	c.JSON(http.StatusOK, out)
}

func CreateSubComment(c *gin.Context) {
	userID := c.GetUint("user_id")
	userName := c.GetString("username")

	var in CreateSubCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment
	if err := global.DB.Select("id").First(&comment, in.Comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	subComment := models.SubComment{
		Message:   in.Message,
		UserID:    userID,
		CommentID: in.Comment,
	}
	if err := global.DB.Create(&subComment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sub comment"})
		return
	}

	c.JSON(http.StatusCreated, SubCommentResp{
		ID:       subComment.ID,
		Message:  subComment.Message,
		Username: userName,
		Created:  subComment.CreatedAt.Format(utils.FormatTime_specific),
	})
}

func UpdateSubComment(c *gin.Context) {
	var in UpdateSubCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var subComment models.SubComment
	if err := global.DB.First(&subComment, in.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub comment not found"})
		return
	}

	if err := global.DB.Model(&subComment).Update("message", in.Message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": subComment.ID, "message": in.Message})
}

func DeleteSubComment(c *gin.Context) {
	var in DeleteSubCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var subComment models.SubComment
	if err := global.DB.First(&subComment, in.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub comment not found"})
		return
	}

	err := global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_comment_id = ?", subComment.ID).
			Delete(&models.SubCommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&subComment).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
