package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moyuan/internal/middleware"
	"moyuan/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("moyuan_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadAdmin())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("Moyuan server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int64) int64 {
			return a + b
		},
		"timeAgo": func(unix int64) string {
			// 评论时间是秒级时间戳
			duration := time.Since(time.Unix(unix, 0))
			seconds := int(duration.Seconds())

			switch {
			case seconds < 60:
				return fmt.Sprintf("%d秒前", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%d分钟前", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%d小时前", seconds/3600)
			default:
				return time.Unix(unix, 0).Format("2006-01-02")
			}
		},
	}

	// Pages: top level and per-directory views
	pages, err := filepath.Glob(templatesDir + "/*.html")
	if err != nil {
		panic(err)
	}
	dirs, err := filepath.Glob(templatesDir + "/*/")
	if err != nil {
		panic(err)
	}
	for _, dir := range dirs {
		name := filepath.Base(strings.TrimSuffix(dir, "/"))
		if name == "layouts" || name == "includes" {
			continue
		}
		sub, err := filepath.Glob(dir + "*.html")
		if err != nil {
			panic(err)
		}
		pages = append(pages, sub...)
	}

	for _, page := range pages {
		rel, err := filepath.Rel(templatesDir, page)
		if err != nil {
			panic(err)
		}
		// e.g. "admin/comments.html", "post.html"
		r.AddFromFilesFuncs(filepath.ToSlash(rel), funcMap, assemble(page)...)
	}

	return r
}
