package controllers_test

import (
	"net/http"
	"testing"

	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 点赞是集合翻转: 赞-取消-再赞
func TestLikeSolutionToggle(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, _ := createUser(t, "like-author")
	_, fanToken := createUser(t, "like-fan")
	origin := seedOrigin(t, "like-problem", nil)
	solution := seedSolution(t, author, origin, true)

	path := "/api/solutions/" + itoa(solution.ID) + "/like"

	w := doRequest(t, r, http.MethodGet, path, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeObject(t, w)
	assert.Equal(t, true, resp["like_flag"])
	assert.Equal(t, float64(1), resp["total_likes"])

	w = doRequest(t, r, http.MethodGet, path, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeObject(t, w)
	assert.Equal(t, false, resp["like_flag"])
	assert.Equal(t, float64(0), resp["total_likes"])

	w = doRequest(t, r, http.MethodGet, path, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeObject(t, w)
	assert.Equal(t, true, resp["like_flag"])
	assert.Equal(t, float64(1), resp["total_likes"])

	// 不存在的题解
	w = doRequest(t, r, http.MethodGet, "/api/solutions/99999/like", fanToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// 不同用户的赞互不干扰
func TestLikeSolutionPerUser(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, _ := createUser(t, "peruser-author")
	_, aToken := createUser(t, "peruser-a")
	_, bToken := createUser(t, "peruser-b")
	origin := seedOrigin(t, "peruser-problem", nil)
	solution := seedSolution(t, author, origin, true)

	path := "/api/solutions/" + itoa(solution.ID) + "/like"

	w := doRequest(t, r, http.MethodGet, path, aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, r, http.MethodGet, path, bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeObject(t, w)
	assert.Equal(t, float64(2), resp["total_likes"])

	// a取消之后b的赞还在
	w = doRequest(t, r, http.MethodGet, path, aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeObject(t, w)
	assert.Equal(t, false, resp["like_flag"])
	assert.Equal(t, float64(1), resp["total_likes"])
}

func TestLikeCommentToggle(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, _ := createUser(t, "clike-author")
	_, fanToken := createUser(t, "clike-fan")
	origin := seedOrigin(t, "clike-problem", nil)
	solution := seedSolution(t, author, origin, true)
	comment := models.Comment{Message: "nice", UserID: author.ID, SolutionID: solution.ID}
	require.NoError(t, global.DB.Create(&comment).Error)

	path := "/api/comments/" + itoa(comment.ID) + "/like"

	w := doRequest(t, r, http.MethodGet, path, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeObject(t, w)
	assert.Equal(t, true, resp["like_flag"])
	assert.Equal(t, float64(1), resp["total_likes"])

	// likes接口要能看到我是否赞过
	w = doRequest(t, r, http.MethodGet, "/api/comments/"+itoa(comment.ID)+"/likes", fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeObject(t, w)
	assert.Equal(t, float64(1), resp["likes"])
	assert.Equal(t, true, resp["liked"])

	w = doRequest(t, r, http.MethodGet, path, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeObject(t, w)
	assert.Equal(t, false, resp["like_flag"])

	w = doRequest(t, r, http.MethodGet, "/api/comments/99999/like", fanToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// 浏览数无条件+1,同一用户重复访问也累加
func TestViewCountIncrements(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, token := createUser(t, "view-author")
	origin := seedOrigin(t, "view-problem", nil)
	solution := seedSolution(t, author, origin, true)

	path := "/api/solutions/" + itoa(solution.ID) + "/view"
	for i := 0; i < 3; i++ {
		w := doRequest(t, r, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var got models.Solution
	require.NoError(t, global.DB.First(&got, solution.ID).Error)
	assert.Equal(t, uint(3), got.View)

	w := doRequest(t, r, http.MethodGet, "/api/solutions/99999/view", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// counts接口: 点赞/浏览之后缓存会被打掉,拿到的是新值
func TestSolutionCountsReflectChanges(t *testing.T) {
	r, _ := setupTestEnv(t)

	author, token := createUser(t, "counts-author")
	origin := seedOrigin(t, "counts-problem", nil)
	solution := seedSolution(t, author, origin, true)

	countsPath := "/api/solutions/" + itoa(solution.ID) + "/counts"

	w := doRequest(t, r, http.MethodGet, countsPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeObject(t, w)
	assert.Equal(t, float64(0), resp["view"])
	assert.Equal(t, float64(0), resp["likes"])

	doRequest(t, r, http.MethodGet, "/api/solutions/"+itoa(solution.ID)+"/view", token, nil)
	doRequest(t, r, http.MethodGet, "/api/solutions/"+itoa(solution.ID)+"/like", token, nil)

	w = doRequest(t, r, http.MethodGet, countsPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeObject(t, w)
	assert.Equal(t, float64(1), resp["view"])
	assert.Equal(t, float64(1), resp["likes"])

	w = doRequest(t, r, http.MethodGet, "/api/solutions/99999/counts", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
