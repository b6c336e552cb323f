package controllers

// 刷题记录与小组-可见性关系的数据来源
import (
	"net/http"
	"strconv"

	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/gin-gonic/gin"
)

type MiniGroupResp struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProblemResp struct {
	ID         uint            `json:"id"`
	Origin     OriginResp      `json:"origin"`
	IsSolved   bool            `json:"is_solved"`
	SolvedTime *string         `json:"solved_time"`
	Groups     []MiniGroupResp `json:"group"`
}

// GetMyProblems 当前用户追踪的全部题目
func GetMyProblems(c *gin.Context) {
	userID := c.GetUint("user_id")

	var problems []models.Problem
	if err := global.DB.
		Where("user_id = ?", userID).
		Preload("Origin").
		Preload("Groups").
		Find(&problems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]ProblemResp, 0, len(problems))
	for i := range problems {
		p := &problems[i]
		groups := make([]MiniGroupResp, 0, len(p.Groups))
		for _, g := range p.Groups {
			groups = append(groups, MiniGroupResp{ID: g.ID, Name: g.Name})
		}
		var solvedTime *string
		if p.SolvedTime != nil {
			s := p.SolvedTime.Format(utils.FormatTime_specific)
			solvedTime = &s
		}
		out = append(out, ProblemResp{
			ID:         p.ID,
			Origin:     toOriginResp(p.Origin),
			IsSolved:   p.IsSolved,
			SolvedTime: solvedTime,
			Groups:     groups,
		})
	}
	c.JSON(http.StatusOK, out)
}

type CreateOriginProbDTO struct {
	URL      string  `json:"url" binding:"required,url"`
	Level    *int    `json:"level"`
	Number   *int    `json:"number"`
	Category string  `json:"category" binding:"required,max=255"`
	Title    string  `json:"title" binding:"required,max=255"`
	Remark   *string `json:"remark" binding:"omitempty,max=255"`
}

// CreateOriginProb 登记一道原始题目-共享的元数据,登记后不属于任何用户
func CreateOriginProb(c *gin.Context) {
	var in CreateOriginProbDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	origin := models.OriginProb{
		URL:      in.URL,
		Level:    in.Level,
		Number:   in.Number,
		Category: in.Category,
		Title:    in.Title,
		Remark:   in.Remark,
	}
	if err := global.DB.Create(&origin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toOriginResp(&origin))
}

// GetOriginProbs 全部原始题目
func GetOriginProbs(c *gin.Context) {
	var origins []models.OriginProb
	if err := global.DB.Order("id ASC").Find(&origins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]OriginResp, 0, len(origins))
	for i := range origins {
		out = append(out, toOriginResp(&origins[i]))
	}
	c.JSON(http.StatusOK, out)
}

type TrackProblemDTO struct {
	Origin uint `json:"origin" binding:"required,min=1"`
}

// TrackProblem 把一道原始题目加入自己的刷题记录
func TrackProblem(c *gin.Context) {
	userID := c.GetUint("user_id")

	var in TrackProblemDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var origin models.OriginProb
	if err := global.DB.First(&origin, in.Origin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "origin problem not found"})
		return
	}

	// 同一(用户,原始题目)只允许一条记录
	var count int64
	if err := global.DB.Model(&models.Problem{}).
		Where("user_id = ? AND origin_id = ?", userID, origin.ID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "problem already tracked"})
		return
	}

	problem := models.Problem{UserID: userID, OriginID: origin.ID}
	if err := global.DB.Create(&problem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": problem.ID})
}

type CreateGroupDTO struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

func CreateGroup(c *gin.Context) {
	var in CreateGroupDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group := models.ProblemGroup{Name: in.Name}
	if err := global.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, MiniGroupResp{ID: group.ID, Name: group.Name})
}

func GetGroups(c *gin.Context) {
	var groups []models.ProblemGroup
	if err := global.DB.Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]MiniGroupResp, 0, len(groups))
	for _, g := range groups {
		out = append(out, MiniGroupResp{ID: g.ID, Name: g.Name})
	}
	c.JSON(http.StatusOK, out)
}

type AddProblemToGroupDTO struct {
	Problem uint `json:"problem" binding:"required,min=1"`
}

// AddProblemToGroup 把自己的一条刷题记录挂进小组-挂进之后小组成员互相可见
func AddProblemToGroup(c *gin.Context) {
	userID := c.GetUint("user_id")

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || groupID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	var in AddProblemToGroupDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.ProblemGroup
	if err := global.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	// 只能挂自己的题目
	var problem models.Problem
	if err := global.DB.
		Where("id = ? AND user_id = ?", in.Problem, userID).
		First(&problem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
		return
	}

	if err := global.DB.Model(&group).Association("Problems").Append(&problem); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "problem added to group"})
}
