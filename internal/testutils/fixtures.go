package testutils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/model"

	"gorm.io/gorm"
)

// MinimalPNG 返回一张 1x1 的合法 PNG。
func MinimalPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func SeedUser(t *testing.T, gdb *gorm.DB, username, role string, approved bool) model.User {
	t.Helper()
	u := model.User{Username: username, Password: "x", Email: username + "@example.com", Role: role, Approved: approved}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u
}

func SeedCreator(t *testing.T, gdb *gorm.DB, username string) model.User {
	t.Helper()
	return SeedUser(t, gdb, username, consts.RoleCreator, true)
}

func SeedClient(t *testing.T, gdb *gorm.DB, username string) model.User {
	t.Helper()
	return SeedUser(t, gdb, username, consts.RoleClient, true)
}

func SeedProject(t *testing.T, gdb *gorm.DB, creatorID uint, name string) model.Project {
	t.Helper()
	p := model.Project{Name: name, CreatorID: creatorID, Status: consts.ProjectStatusActive}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("创建项目失败: %v", err)
	}
	return p
}

func SeedCategory(t *testing.T, gdb *gorm.DB, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	return c
}

// SeedModel 创建模型及其版本，versions 为各版本号，每个版本带一张图片。
func SeedModel(t *testing.T, gdb *gorm.DB, projectID uint, name string, versions ...int) model.AssetModel {
	t.Helper()
	m := model.AssetModel{Name: name, ProjectID: projectID}
	if err := gdb.Create(&m).Error; err != nil {
		t.Fatalf("创建模型失败: %v", err)
	}
	for _, n := range versions {
		v := model.ModelVersion{ModelID: m.ID, Version: n, FilePath: "/files/" + name + ".glb"}
		if err := gdb.Create(&v).Error; err != nil {
			t.Fatalf("创建版本失败: %v", err)
		}
		img := model.ModelImage{VersionID: v.ID, Path: fmt.Sprintf("/img/%s-v%d.png", name, n)}
		if err := gdb.Create(&img).Error; err != nil {
			t.Fatalf("创建图片失败: %v", err)
		}
		v.Images = []model.ModelImage{img}
		m.Versions = append(m.Versions, v)
	}
	return m
}
