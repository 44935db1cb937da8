package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/luckfunc/gardenstock/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// ServerConfig configures the page server. A nil Snapshotter disables
// /snapshot.png.
type ServerConfig struct {
	Listen      string
	Snapshotter *Snapshotter
}

type Server struct {
	page     *Page
	snap     *Snapshotter
	upgrader websocket.Upgrader
	srv      *http.Server
}

func NewServer(page *Page, cfg ServerConfig) *Server {
	s := &Server{
		page: page,
		snap: cfg.Snapshotter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.srv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(s.page.State())
		if err != nil {
			http.Error(w, "failed to marshal state", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/snapshot.png", func(w http.ResponseWriter, r *http.Request) {
		if s.snap == nil {
			http.NotFound(w, r)
			return
		}
		png, err := s.snap.Capture(r.Context(), s.page)
		if err != nil {
			logging.Printf("snapshot failed: %v", err)
			http.Error(w, "snapshot failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	mux.HandleFunc("/ws", s.handleWS)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		html, err := s.page.HTML(true)
		if err != nil {
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	})

	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub, initial, err := s.page.subscribe()
	if err != nil {
		logging.Printf("failed to marshal initial state: %v", err)
		return
	}
	defer s.page.hub.remove(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(messageType int, data []byte) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(messageType, data)
	}

	if err := write(websocket.TextMessage, initial); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case data, ok := <-sub.send:
			if !ok {
				return
			}
			if err := write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	logging.Printf("page server listening on %s", ln.Addr())
	return s.Serve(ln)
}

// Shutdown closes websocket subscribers and then the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.page.hub.closeAll()
	return s.srv.Shutdown(ctx)
}
