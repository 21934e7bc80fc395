package testutils

import "os"

// SavedEnv 记录环境变量被覆盖前的状态。
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// RestoreEnv 按逆序恢复，同一个键被多次覆盖时回到最初的值。
func RestoreEnv(envs []SavedEnv) {
	for i := len(envs) - 1; i >= 0; i-- {
		env := envs[i]
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
		} else {
			_ = os.Unsetenv(env.Key)
		}
	}
}

// DefaultTestEnv 测试进程使用的基础配置：debug 模式、关闭 Redis。
func DefaultTestEnv() []SavedEnv {
	return []SavedEnv{
		SetEnv("ASSET_VAULT_SERVER_MODE", "debug"),
		SetEnv("ASSET_VAULT_REDIS_ENABLED", "false"),
		SetEnv("ASSET_VAULT_JWT_SECRET", "test_secret"),
	}
}
