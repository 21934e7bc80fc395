package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"asset-vault-server/internal/blob"
	"asset-vault-server/internal/config"
	"asset-vault-server/internal/consts"
	"asset-vault-server/internal/db"
	"asset-vault-server/internal/di"
	"asset-vault-server/internal/middleware"
	"asset-vault-server/internal/platform/cache"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	flag.Parse()

	config.InitConfig(*configDir)
	db.InitDB()

	uploader := blob.NewUploaderFromConfig()
	if local, ok := uploader.(*blob.LocalStore); ok {
		ensureStorageDir(local.Root())
	}

	app, err := di.InitializeApplication(db.DB, uploader)
	if err != nil {
		log.Fatalf("❌ 应用初始化失败: %v", err)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.Modules.Asset.Service.EnsureDefaults(bootCtx); err != nil {
		log.Fatalf("❌ 初始化分类与状态失败: %v", err)
	}
	seedAdmin(bootCtx, app)
	cancelBoot()

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	applyTrustedProxies(r)
	app.Router.Init(r)
	setupStaticFiles(r, uploader)
	r.NoRoute(getNoRouteHandler())

	if *exportRoutes {
		exportAPI(r)
		return
	}

	printWelcomeMessage()

	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}
	if err := cache.CloseRedisClient(); err != nil {
		log.Printf("⚠️ 关闭 Redis 连接失败: %v", err)
	}
	log.Println("✅ 服务已退出")
}

// seedAdmin 首次部署时通过环境变量创建管理员账号。
func seedAdmin(ctx context.Context, app *di.Application) {
	username := strings.TrimSpace(os.Getenv("ASSET_VAULT_ADMIN_USERNAME"))
	password := os.Getenv("ASSET_VAULT_ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}
	if err := app.Modules.User.Service.EnsureAdmin(ctx, username, password); err != nil {
		log.Printf("⚠️ 创建管理员账号失败: %v", err)
	}
}

func splitTrustedProxyList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// applyTrustedProxies 未配置或配置无效时不信任任何代理，ClientIP 取连接地址。
func applyTrustedProxies(r *gin.Engine) {
	proxies := splitTrustedProxyList(config.Get().Server.TrustedProxies)
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		log.Printf("⚠️ trusted_proxies 配置无效，已禁用代理信任: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
}

// setupStaticFiles 本地存储时对外提供图片与模型文件，对象存储由其公网地址直接访问。
func setupStaticFiles(r *gin.Engine, uploader blob.Uploader) {
	local, ok := uploader.(*blob.LocalStore)
	if !ok {
		return
	}
	r.Group(config.Get().Storage.URLPrefix, middleware.StaticCache()).
		StaticFS("", gin.Dir(local.Root(), false))
}

func getNoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, config.Get().Storage.URLPrefix) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
	}
}

func ensureStorageDir(path string) {
	checkSecurePath(path)
	if err := os.MkdirAll(path, 0755); err != nil {
		log.Fatal("❌ 无法创建存储目录: ", err)
	}
}

func printWelcomeMessage() {
	cfg := config.Get()
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  后端版本 : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   📁  存储驱动 : %s\n", cfg.Storage.Driver)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine) {
	routes := r.Routes()

	// 简单的结构体，只留关键信息
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	var exportList []RouteInfo
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, _ := json.MarshalIndent(exportList, "", "  ")
	_ = os.WriteFile("routes.json", file, 0644)

	println("✅ 路由已成功导出到 routes.json")
}

func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("❌ 路径解析失败: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ 无法获取当前工作目录: %v", err)
	}

	if absPath == cwd {
		log.Fatalf("❌ 安全配置错误: 存储目录 '%s' 不能设置为项目根目录！这会导致源代码泄露。", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err == nil && !strings.HasPrefix(rel, "..") {
		relSlash := filepath.ToSlash(rel)

		// 位于项目目录内时只允许这些子目录
		allowedDirs := []string{"uploads", "storage", "assets", "data", "tmp"}

		firstComponent := strings.Split(relSlash, "/")[0]
		for _, allowed := range allowedDirs {
			if strings.EqualFold(firstComponent, allowed) {
				return
			}
		}
		log.Fatalf("❌ 安全配置错误: 存储目录 '%s' (解析为: '%s') 必须位于项目根目录下的安全子目录中 (如 %v)。", path, relSlash, allowedDirs)
	}
}
