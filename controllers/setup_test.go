package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/jngcii/helpmycode/config"
	"github.com/jngcii/helpmycode/global"
	"github.com/jngcii/helpmycode/models"
	"github.com/jngcii/helpmycode/router"
	"github.com/jngcii/helpmycode/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 每个测试一套独立的内存sqlite + miniredis
func setupTestEnv(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Users{},
		&models.OriginProb{},
		&models.Problem{},
		&models.ProblemGroup{},
		&models.Solution{},
		&models.Comment{},
		&models.SubComment{},
		&models.SolutionLike{},
		&models.CommentLike{},
		&models.SubCommentLike{},
	))
	global.DB = db

	mr := miniredis.RunT(t)
	global.RedisDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	config.InitUserCache(64)

	return router.SetupRouter(), mr
}

// 直接入库并签发token-绕过注册接口,测试里不跑bcrypt
func createUser(t *testing.T, username string) (models.Users, string) {
	t.Helper()
	user := models.Users{Username: username, Password: "not-a-real-hash"}
	require.NoError(t, global.DB.Create(&user).Error)
	token, err := utils.GenerateJWT(username)
	require.NoError(t, err)
	return user, token
}

// 只签发token不入库-用来模拟已注销的用户
func createTokenOnly(t *testing.T, username string) (string, string) {
	t.Helper()
	token, err := utils.GenerateJWT(username)
	require.NoError(t, err)
	return token, username
}

func seedOrigin(t *testing.T, title string, number *int) models.OriginProb {
	t.Helper()
	origin := models.OriginProb{
		URL:      "https://leetcode.com/problems/" + title,
		Title:    title,
		Number:   number,
		Category: "algorithm",
	}
	require.NoError(t, global.DB.Create(&origin).Error)
	return origin
}

func seedProblem(t *testing.T, user models.Users, origin models.OriginProb) models.Problem {
	t.Helper()
	problem := models.Problem{UserID: user.ID, OriginID: origin.ID}
	require.NoError(t, global.DB.Create(&problem).Error)
	return problem
}

func seedGroup(t *testing.T, name string, problems ...models.Problem) models.ProblemGroup {
	t.Helper()
	group := models.ProblemGroup{Name: name}
	require.NoError(t, global.DB.Create(&group).Error)
	for i := range problems {
		require.NoError(t, global.DB.Model(&group).Association("Problems").Append(&problems[i]))
	}
	return group
}

func seedSolution(t *testing.T, user models.Users, origin models.OriginProb, solved bool) models.Solution {
	t.Helper()
	solution := models.Solution{
		UserID:   user.ID,
		OriginID: origin.ID,
		Code:     "print('hello')",
		Lang:     models.LangPython,
		Solved:   solved,
	}
	require.NoError(t, global.DB.Create(&solution).Error)
	return solution
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
