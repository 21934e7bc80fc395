package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"asset-vault-server/internal/model"
	"asset-vault-server/internal/modules/favourite/dto"
	"asset-vault-server/internal/modules/favourite/repo"
	favouriteservice "asset-vault-server/internal/modules/favourite/service"
	"asset-vault-server/internal/platform/auth"
	"asset-vault-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证切换收藏接口依次返回 added 与 removed，状态接口与之一致。
func TestToggleFavouriteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	h := New(favouriteservice.New(repo.NewFavouriteRepository(gdb)), auth.NewGinProvider())

	creator := testutils.SeedCreator(t, gdb, "maker")
	client := testutils.SeedClient(t, gdb, "buyer")
	p := testutils.SeedProject(t, gdb, creator.ID, "Wedding")
	m := testutils.SeedModel(t, gdb, p.ID, "Mandap", 1)
	vid := strconv.FormatUint(uint64(m.Versions[0].ID), 10)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.Attach(c, auth.CurrentUser{ID: client.ID, Username: client.Username, Role: client.Role})
		c.Next()
	})
	r.POST("/favourites/toggle", h.ToggleFavourite)
	r.GET("/favourites/:version_id", h.GetFavouriteStatus)

	toggle := func() dto.ToggleResponse {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/favourites/toggle", strings.NewReader(`{"version_id":`+vid+`}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("切换收藏期望 200，实际为 %d body=%s", w.Code, w.Body.String())
		}
		var resp dto.ToggleResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return resp
	}
	status := func() bool {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/favourites/"+vid, nil))
		var resp dto.StatusResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return resp.Favourited
	}

	if resp := toggle(); resp.Action != dto.ActionAdded {
		t.Fatalf("期望 action=added，实际为 %+v", resp)
	}
	if !status() {
		t.Fatalf("期望状态为已收藏")
	}
	if resp := toggle(); resp.Action != dto.ActionRemoved {
		t.Fatalf("期望 action=removed，实际为 %+v", resp)
	}
	if status() {
		t.Fatalf("期望状态为未收藏")
	}
	var count int64
	gdb.Model(&model.Favourite{}).Count(&count)
	if count != 0 {
		t.Fatalf("期望收藏记录已删除，实际为 %d", count)
	}
}
