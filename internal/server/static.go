package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// serveStatic handles everything the API router didn't match. Unknown API
// paths answer JSON so the client's gateway can classify them; anything else
// is served from the public directory with an SPA index.html fallback.
func (s *Server) serveStatic(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
		return
	}

	publicDir := s.config.Server.PublicDir
	if publicDir == "" {
		c.String(http.StatusNotFound, "Not Found")
		return
	}

	// Clean with a leading slash keeps the lookup inside the public dir
	requested := filepath.Join(publicDir, filepath.Clean("/"+c.Request.URL.Path))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		c.File(requested)
		return
	}

	index := filepath.Join(publicDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}

	c.String(http.StatusNotFound, "Not Found")
}
