package websocket

import (
	"context"
	"net"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/uart.go/pkg/framework"
	"github.com/robotalks/uart.go/pkg/link"
	"github.com/robotalks/uart.go/pkg/sim"
)

// Server accepts websocket connections, each connection is a link
// to the device in the loop.
type Server struct {
	Addr string

	hub link.Hub
}

// NewServer creates a Server.
func NewServer(addr string) *Server {
	return &Server{Addr: addr}
}

// Subscribe is a helper to subscribe device events.
func (s *Server) Subscribe(sub sim.EventSubscriber) *Server {
	sub.SubscribeEvents(&s.hub)
	return s
}

// Connections is the number of active connections.
func (s *Server) Connections() int {
	return s.hub.Len()
}

// Handler creates the http.Handler serving connections
// with the loop context.
func (s *Server) Handler(ctx context.Context) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		pipe := link.NewPipe(New(conn))
		leave := s.hub.Join(pipe)
		defer leave()
		glog.V(1).Infof("websocket connected: %s", conn.Request().RemoteAddr)
		err := pipe.Run(ctx)
		glog.V(1).Infof("websocket disconnected: %s: %v", conn.Request().RemoteAddr, err)
	})
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	glog.Infof("websocket listening on %s", ln.Addr())
	server := &http.Server{Handler: s.Handler(ctx)}
	return fx.RunWithContextCloser(ctx, server, func() error {
		return server.Serve(ln)
	})
}

// AddToLoop implements LoopAdder.
func (s *Server) AddToLoop(l *fx.Loop) {
	l.AddRunnable(s)
}
