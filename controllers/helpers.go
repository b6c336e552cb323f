package controllers

import (
	"errors"
	"fmt"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/utils"

	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

// 内部区分"不存在"和"不是创建者"两种失败,便于审计;
// 对外二者统一返回404,不向非创建者暴露资源是否存在
var (
	errSolutionNotFound = errors.New("solution not found")
	errNotCreator       = errors.New("requester is not the creator")
)

// findOwnSolution 按 id+创建者 一起查,两个维度任一不满足都视为未找到
func findOwnSolution(id, userID uint) (*models.Solution, error) {
	var solution models.Solution
	if err := global.DB.Where("id = ?", id).First(&solution).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSolutionNotFound
		}
		return nil, err
	}
	if solution.UserID != userID {
		return nil, errNotCreator
	}
	return &solution, nil
}

// solutionExists 题解存在性检验-先走redis缓存,未命中查库并回填
func solutionExists(id uint) (bool, error) {
	IDkey := fmt.Sprintf(config.RedisSolutionKey, id)
	cacheValue, err := global.RedisDB.Get(IDkey).Result()
	if err == nil {
		// 缓存命中
		return cacheValue == "1", nil
	}
	if err != redis.Nil {
		// Redis错误
		return false, err
	}
	// 缓存未命中，查询数据库
	var count int64
	if err := global.DB.Model(&models.Solution{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	// 设置缓存值
	cacheValue = "0"
	if count > 0 {
		cacheValue = "1"
	}
	global.RedisDB.Set(IDkey, cacheValue, config.SolutionTTL)
	return count > 0, nil
}

// 计数缓存失效-点赞/浏览之后尽力删除,允许失败
func invalidateSolutionCounts(id uint) {
	_ = global.RedisDB.Del(fmt.Sprintf(config.RedisCountKey, id)).Err()
}

// 列表项DTO-只返回概要字段
type MiniSolutionResp struct {
	ID      uint   `json:"id"`
	Origin  uint   `json:"origin"`
	Title   string `json:"title"`
	Lang    string `json:"lang"`
	Solved  bool   `json:"solved"`
	Creator string `json:"creator"`
	View    uint   `json:"view"`
	Created string `json:"created_at"`
}

func toMiniSolution(s *models.Solution) MiniSolutionResp {
	creator := "unknown" //初始化
	if s.User != nil {
		creator = s.User.Username
	}
	title := ""
	if s.Origin != nil {
		title = s.Origin.Title
	}
	return MiniSolutionResp{
		ID:      s.ID,
		Origin:  s.OriginID,
		Title:   title,
		Lang:    s.Lang,
		Solved:  s.Solved,
		Creator: creator,
		View:    s.View,
		Created: s.CreatedAt.Format(utils.FormatTime_specific),
	}
}

type OriginResp struct {
	ID       uint    `json:"id"`
	URL      string  `json:"url"`
	Level    *int    `json:"level"`
	Number   *int    `json:"number"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Remark   *string `json:"remark"`
}

func toOriginResp(o *models.OriginProb) OriginResp {
	if o == nil {
		return OriginResp{}
	}
	return OriginResp{
		ID: o.ID, URL: o.URL, Level: o.Level, Number: o.Number,
		Category: o.Category, Title: o.Title, Remark: o.Remark,
	}
}

type CommentResp struct {
	ID       uint   `json:"id"`
	Message  string `json:"message"`
	Username string `json:"username"`
	Likes    int64  `json:"likes"`
	Created  string `json:"created_at"`
}

// 详情DTO-单条查看时返回全量字段
type SolutionDetailResp struct {
	ID       uint          `json:"id"`
	Origin   OriginResp    `json:"origin"`
	Code     string        `json:"code"`
	Lang     string        `json:"lang"`
	Caption  *string       `json:"caption"`
	View     uint          `json:"view"`
	Solved   bool          `json:"solved"`
	Creator  string        `json:"creator"`
	Likes    int64         `json:"likes"`
	Comments []CommentResp `json:"comments"`
	Created  string        `json:"created_at"`
	Updated  string        `json:"updated_at"`
}

// 按评论id批量查点赞数,避免N+1
func commentLikeCounts(commentIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		CommentID uint
		Cnt       int64
	}
	if err := global.DB.Model(&models.CommentLike{}).
		Select("comment_id, count(*) as cnt").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.CommentID] = r.Cnt
	}
	return counts, nil
}

// buildSolutionDetail 组织详情响应(点赞数+评论一并带出)
func buildSolutionDetail(solution *models.Solution) (*SolutionDetailResp, error) {
	var likes int64
	if err := global.DB.Model(&models.SolutionLike{}).
		Where("solution_id = ?", solution.ID).
		Count(&likes).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := global.DB.
		Where("solution_id = ?", solution.ID).
		Order("created_at ASC"). //按创建时间升序
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username") // 预加载
		}).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.ID)
	}
	likeMap, err := commentLikeCounts(ids)
	if err != nil {
		return nil, err
	}

	commentResps := make([]CommentResp, 0, len(comments))
	for _, cm := range comments {
		username := "unknown"
		if cm.User != nil {
			username = cm.User.Username
		}
		commentResps = append(commentResps, CommentResp{
			ID:       cm.ID,
			Message:  cm.Message,
			Username: username,
			Likes:    likeMap[cm.ID],
			Created:  cm.CreatedAt.Format(utils.FormatTime_specific),
		})
	}

	creator := "unknown"
	if solution.User != nil {
		creator = solution.User.Username
	}

	return &SolutionDetailResp{
		ID:       solution.ID,
		Origin:   toOriginResp(solution.Origin),
		Code:     solution.Code,
		Lang:     solution.Lang,
		Caption:  solution.Caption,
		View:     solution.View,
		Solved:   solution.Solved,
		Creator:  creator,
		Likes:    likes,
		Comments: commentResps,
		Created:  solution.CreatedAt.Format(utils.FormatTime_specific),
		Updated:  solution.UpdatedAt.Format(utils.FormatTime_specific),
	}, nil
}
