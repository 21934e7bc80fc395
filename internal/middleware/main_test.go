package middleware

import (
	"os"
	"testing"

	"asset-vault-server/internal/config"
	"asset-vault-server/internal/testutils"
)

// 测试内容：为 middleware 测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "asset-vault-config-*")
	if err != nil {
		panic(err)
	}
	envs := testutils.DefaultTestEnv()
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

// reloadConfig 在 t.Setenv 之后重新加载配置。
func reloadConfig(t *testing.T) {
	t.Helper()
	config.InitConfig(t.TempDir())
}
