package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleLessonWebSocket subscribes the connection to one lesson's authoring
// events.
func HandleLessonWebSocket(c *gin.Context) {
	lessonID := c.Param("id")
	if lessonID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson id is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upgrade connection"})
		return
	}

	H.Register(lessonID, conn)
}

// HandleCatalogWebSocket subscribes the connection to catalog-changed
// events.
func HandleCatalogWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upgrade connection"})
		return
	}

	H.RegisterGlobal(conn)
}
