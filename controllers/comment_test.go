package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	r, mr := setupTestEnv(t)

	author, _ := createUser(t, "cmt-author")
	_, commenterToken := createUser(t, "cmt-commenter")
	origin := seedOrigin(t, "cmt-problem", nil)
	solution := seedSolution(t, author, origin, true)

	w := doRequest(t, r, http.MethodPost, "/api/comments", commenterToken, map[string]interface{}{
		"solution": solution.ID,
		"message":  "have you tried memoization?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeObject(t, w)
	assert.Equal(t, "cmt-commenter", created["username"])
	commentID := uint(created["id"].(float64))

	w = doRequest(t, r, http.MethodGet, "/api/solutions/"+itoa(solution.ID)+"/comments", commenterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "have you tried memoization?", list[0]["message"])

	// 防刷窗口过了才能再发
	mr.FastForward(11 * time.Second)

	w = doRequest(t, r, http.MethodPut, "/api/comments", commenterToken, map[string]interface{}{
		"id":      commentID,
		"message": "edited",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/comments", commenterToken, map[string]interface{}{
		"id": commentID,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/solutions/"+itoa(solution.ID)+"/comments", commenterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 0)
}

// 10秒内第二条评论被限流,窗口过后恢复
func TestCreateCommentRateLimited(t *testing.T) {
	r, mr := setupTestEnv(t)

	author, _ := createUser(t, "rate-author")
	_, token := createUser(t, "rate-commenter")
	origin := seedOrigin(t, "rate-problem", nil)
	solution := seedSolution(t, author, origin, true)

	body := map[string]interface{}{"solution": solution.ID, "message": "first"}
	w := doRequest(t, r, http.MethodPost, "/api/comments", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	body["message"] = "second"
	w = doRequest(t, r, http.MethodPost, "/api/comments", token, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	mr.FastForward(11 * time.Second)

	w = doRequest(t, r, http.MethodPost, "/api/comments", token, body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCommentOnMissingSolution(t *testing.T) {
	r, _ := setupTestEnv(t)

	_, token := createUser(t, "missing-commenter")

	w := doRequest(t, r, http.MethodPost, "/api/comments", token, map[string]interface{}{
		"solution": 99999,
		"message":  "into the void",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// message缺失是400
	w = doRequest(t, r, http.MethodPost, "/api/comments", token, map[string]interface{}{
		"solution": 99999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// 评论的更新/删除对任何登录用户开放,与题解的权限规则不对称
func TestCommentUpdateDeleteByNonCreator(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, _ := createUser(t, "asym-author")
	_, strangerToken := createUser(t, "asym-stranger")
	origin := seedOrigin(t, "asym-problem", nil)
	solution := seedSolution(t, author, origin, true)

	comment := models.Comment{Message: "original", UserID: author.ID, SolutionID: solution.ID}
	require.NoError(t, global.DB.Create(&comment).Error)

	w := doRequest(t, r, http.MethodPut, "/api/comments", strangerToken, map[string]interface{}{
		"id":      comment.ID,
		"message": "rewritten by someone else",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Comment
	require.NoError(t, global.DB.First(&got, comment.ID).Error)
	assert.Equal(t, "rewritten by someone else", got.Message)

	w = doRequest(t, r, http.MethodDelete, "/api/comments", strangerToken, map[string]interface{}{
		"id": comment.ID,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// 删除评论级联清理楼中楼及其点赞
func TestDeleteCommentCascadesSubComments(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, token := createUser(t, "cascade-author")
	origin := seedOrigin(t, "cascade-problem", nil)
	solution := seedSolution(t, author, origin, true)

	comment := models.Comment{Message: "root", UserID: author.ID, SolutionID: solution.ID}
	require.NoError(t, global.DB.Create(&comment).Error)
	sub := models.SubComment{Message: "leaf", UserID: author.ID, CommentID: comment.ID}
	require.NoError(t, global.DB.Create(&sub).Error)
	require.NoError(t, global.DB.Create(&models.SubCommentLike{UserID: author.ID, SubCommentID: sub.ID}).Error)

	w := doRequest(t, r, http.MethodDelete, "/api/comments", token, map[string]interface{}{
		"id": comment.ID,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, global.DB.Model(&models.SubComment{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, global.DB.Model(&models.SubCommentLike{}).Where("sub_comment_id = ?", sub.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubCommentLifecycle(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, _ := createUser(t, "sub-author")
	_, replierToken := createUser(t, "sub-replier")
	origin := seedOrigin(t, "sub-problem", nil)
	solution := seedSolution(t, author, origin, true)
	comment := models.Comment{Message: "root", UserID: author.ID, SolutionID: solution.ID}
	require.NoError(t, global.DB.Create(&comment).Error)

	w := doRequest(t, r, http.MethodPost, "/api/subcomments", replierToken, map[string]interface{}{
		"comment": comment.ID,
		"message": "replying here",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeObject(t, w)
	assert.Equal(t, "sub-replier", created["username"])
	subID := uint(created["id"].(float64))

	w = doRequest(t, r, http.MethodGet, "/api/comments/"+itoa(comment.ID)+"/subcomments", replierToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "replying here", list[0]["message"])

	// 楼中楼同样不校验创建者
	w = doRequest(t, r, http.MethodPut, "/api/subcomments", replierToken, map[string]interface{}{
		"id":      subID,
		"message": "edited reply",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/subcomments", replierToken, map[string]interface{}{
		"id": subID,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	// 挂在不存在的评论下是404
	w = doRequest(t, r, http.MethodPost, "/api/subcomments", replierToken, map[string]interface{}{
		"comment": 99999,
		"message": "orphan",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
