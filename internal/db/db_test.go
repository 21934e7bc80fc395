package db

import (
	"os"
	"path/filepath"
	"testing"

	"asset-vault-server/internal/config"
	"asset-vault-server/internal/model"
)

// 测试内容：验证使用 sqlite 临时文件初始化数据库并创建核心表。
func TestInitDB_SQLiteTempFile(t *testing.T) {
	tmp := t.TempDir()
	cfgDir := filepath.Join(tmp, "cfg")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("创建配置目录失败: %v", err)
	}

	dbFile := filepath.Join(tmp, "db", "test.db")
	t.Setenv("ASSET_VAULT_SERVER_MODE", "debug")
	t.Setenv("ASSET_VAULT_DATABASE_TYPE", "sqlite")
	t.Setenv("ASSET_VAULT_DATABASE_FILENAME", dbFile)

	config.InitConfig(cfgDir)
	InitDB()

	if DB == nil {
		t.Fatalf("期望 DB 已初始化")
	}
	for _, table := range []interface{}{&model.User{}, &model.Project{}, &model.AssetModel{}, &model.ModelVersion{}, &model.Favourite{}} {
		if !DB.Migrator().HasTable(table) {
			t.Fatalf("期望表 %T 已创建", table)
		}
	}
	if !DB.Migrator().HasTable("portfolio_page_models") {
		t.Fatalf("期望连接表 portfolio_page_models 已创建")
	}

	sqlDB, err := DB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
