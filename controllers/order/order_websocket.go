package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/littlelemon/restaurant-api/middleware"
	"github.com/littlelemon/restaurant-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsSubscriber ties a connection to the identity that opened it so broadcasts
// can be scoped the same way order listings are.
type wsSubscriber struct {
	userID  uint
	role    middleware.Role
	isAdmin bool
}

func (s wsSubscriber) canSee(order models.Order) bool {
	if s.role == middleware.RoleManager || s.isAdmin {
		return true
	}
	if s.role == middleware.RoleDeliveryCrew {
		return order.DeliveryCrewID != nil && *order.DeliveryCrewID == s.userID
	}
	return order.UserID == s.userID
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]wsSubscriber)
)

// GET /orders/ws
// Streams order creations and status changes. Each client only receives
// orders its role may see: managers and admins everything, delivery crew
// their assigned orders, customers their own.
func OrderUpdatesHandler(c *gin.Context) {
	user := middleware.CurrentUser(c)
	role := middleware.CurrentRole(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = wsSubscriber{userID: user.ID, role: role, isAdmin: user.IsAdmin}
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

func broadcastOrderUpdate(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for conn, sub := range wsClients {
		if !sub.canSee(order) {
			continue
		}
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
