package models

import "gorm.io/gorm"

// VisibleUserIDs 计算请求者能看到哪些用户的内容:
// 自己 + 自己题目所在的每个小组里的所有成员。
// 小组成员关系是由题目归属推导的(用户“属于”包含其题目的小组),
// 每次请求都现场遍历关联表计算,不做任何存储,避免过期数据。
func VisibleUserIDs(db *gorm.DB, userID uint) ([]uint, error) {
	// 先找到我的题目所在的全部小组
	var groupIDs []uint
	if err := db.Table("problem_group_members").
		Joins("JOIN problems ON problems.id = problem_group_members.problem_id").
		Where("problems.user_id = ? AND problems.deleted_at IS NULL", userID).
		Distinct().
		Pluck("problem_group_members.problem_group_id", &groupIDs).Error; err != nil {
		return nil, err
	}

	seen := map[uint]bool{userID: true} // 没有小组时只能看到自己
	ids := []uint{userID}

	if len(groupIDs) > 0 {
		var memberIDs []uint
		if err := db.Table("problems").
			Joins("JOIN problem_group_members m ON m.problem_id = problems.id").
			Where("m.problem_group_id IN ? AND problems.deleted_at IS NULL", groupIDs).
			Distinct().
			Pluck("problems.user_id", &memberIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range memberIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
