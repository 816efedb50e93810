package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type setupGroupFunc func(*gin.RouterGroup)

// SetupRouter registers every route under /api.
func (s *Server) SetupRouter(r *gin.RouterGroup) {
	r.GET("/", s.indexHandler)
	api := r.Group("/api")
	api.GET("/", s.indexHandler)

	groups := map[string]setupGroupFunc{
		"/words":      s.setupWordRouter,
		"/books":      s.setupBookRouter,
		"/categories": s.setupCategoryRouter,
		"/stats":      s.setupStatsRouter,
		"/favorites":  s.setupFavoriteRouter,
		"/notes":      s.setupNoteRouter,
		"/quiz":       s.setupQuizRouter,
		"/admin":      s.setupAdminRouter,
	}
	for prefix, setup := range groups {
		setup(api.Group(prefix))
	}
}

func (s *Server) setupWordRouter(g *gin.RouterGroup) {
	admin := RequireAdmin(s.auth)

	g.GET("", s.listWords)
	g.POST("", admin, s.createWord)
	g.GET("/popular", s.popularWords)
	g.GET("/daily", s.dailyWord)
	g.GET("/random", s.randomWord)
	g.POST("/view", s.recordView)
	g.GET("/:id", s.getWord)
	g.GET("/:id/related", s.relatedWords)
	g.PUT("/:id", admin, s.updateWord)
	g.DELETE("/:id", admin, s.deleteWord)
}

func (s *Server) setupBookRouter(g *gin.RouterGroup) {
	g.GET("", s.listBooks)
}

func (s *Server) setupCategoryRouter(g *gin.RouterGroup) {
	g.GET("", s.listCategories)
}

func (s *Server) setupStatsRouter(g *gin.RouterGroup) {
	g.GET("", s.stats)
}

func (s *Server) setupFavoriteRouter(g *gin.RouterGroup) {
	g.GET("", s.listFavorites)
	g.POST("/:id", s.toggleFavorite)
}

func (s *Server) setupNoteRouter(g *gin.RouterGroup) {
	g.GET("", s.listNotes)
	g.GET("/:id", s.getNote)
	g.PUT("/:id", s.saveNote)
}

func (s *Server) setupQuizRouter(g *gin.RouterGroup) {
	g.GET("", s.createQuiz)
	g.POST("/check", s.checkAnswer)
}

func (s *Server) setupAdminRouter(g *gin.RouterGroup) {
	g.POST("/login", s.adminLogin)
}

func (s *Server) indexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
