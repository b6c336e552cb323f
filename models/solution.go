package models

import (
	"time"

	"gorm.io/gorm"
)

// 题解支持的语言
const (
	LangC          = "c"
	LangCpp        = "cpp"
	LangJava       = "java"
	LangPython     = "python"
	LangJavascript = "javascript"
)

// 题解/提问是同一个实体: solved=false 表示开放的提问, solved=true 表示已提交的题解
type Solution struct {
	gorm.Model
	User     *Users `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // 外键约束与级联
	UserID   uint   `gorm:"index"`                                         // 创建者
	Origin   *OriginProb
	OriginID uint      `gorm:"index"` // 对应的原始题目
	Code     string    `gorm:"type:longtext"` //长文本
	Lang     string    `gorm:"size:32;not null"`
	Caption  *string   `gorm:"type:text"` // 仅题解才有意义的说明,提问时为空
	View     uint      `gorm:"default:0"`
	Solved   bool      `gorm:"not null"`
	Comments []Comment `gorm:"foreignKey:SolutionID"` //这个模型以SolutionID作为外键
}

type Comment struct {
	gorm.Model         // 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	Message     string `gorm:"type:text;not null"`
	User        *Users `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      uint   `gorm:"index"`
	SolutionID  uint   `gorm:"index"`
	SubComments []SubComment `gorm:"foreignKey:CommentID"` // 楼中楼
}

type SubComment struct {
	gorm.Model
	Message   string `gorm:"type:text;not null"`
	User      *Users `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint   `gorm:"index"`
	CommentID uint   `gorm:"index"`
}

// 点赞关联表-集合语义,一个用户对同一目标至多一条
type SolutionLike struct {
	UserID     uint      `gorm:"primaryKey"`
	SolutionID uint      `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type CommentLike struct {
	UserID    uint      `gorm:"primaryKey"`
	CommentID uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type SubCommentLike struct {
	UserID       uint      `gorm:"primaryKey"`
	SubCommentID uint      `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Solution) TableName() string       { return "solutions" }
func (Comment) TableName() string        { return "comments" }
func (SubComment) TableName() string     { return "sub_comments" }
func (SolutionLike) TableName() string   { return "solution_likes" }
func (CommentLike) TableName() string    { return "comment_likes" }
func (SubCommentLike) TableName() string { return "sub_comment_likes" }
