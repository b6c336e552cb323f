package models

import (
	"time"

	"gorm.io/gorm"
)

// 原始题目-所有用户共享的题目元数据,不属于任何用户
type OriginProb struct {
	gorm.Model
	URL      string  `gorm:"size:255;not null"`
	Level    *int    //难度可为空
	Number   *int    `gorm:"index"` // 题号可为空-搜索时做精确匹配
	Category string  `gorm:"size:255"`
	Title    string  `gorm:"size:255;not null"`
	Remark   *string `gorm:"size:255"`
}

// 用户的刷题记录-每个用户对同一原始题目各有一条
type Problem struct {
	gorm.Model
	Origin     *OriginProb `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OriginID   uint        `gorm:"index"`
	User       *Users      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID     uint        `gorm:"index"`
	IsSolved   bool        `gorm:"default:false"`
	SolvedTime *time.Time
	// 小组归属-可见性就是通过这里的多对多关系推导的
	Groups []ProblemGroup `gorm:"many2many:problem_group_members;"`
}

// 题目小组-纯组织用途
type ProblemGroup struct {
	gorm.Model
	Name     string    `gorm:"size:255;not null"`
	Problems []Problem `gorm:"many2many:problem_group_members;"`
}

func (OriginProb) TableName() string   { return "origin_probs" }
func (Problem) TableName() string      { return "problems" }
func (ProblemGroup) TableName() string { return "problem_groups" }
