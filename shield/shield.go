package shield

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Shield accepts the game client that runs /connect and keeps a single session alive
type Shield struct {
	Address  string
	Path     string
	MaxDelay time.Duration
	IO       *ShieldIO

	log      *logrus.Logger
	upgrader websocket.Upgrader
	server   *http.Server
}

func NewShield(config *ShieldConfig, log *logrus.Logger) *Shield {
	if config.MaxDelaySeconds < 1 {
		config.MaxDelaySeconds = 1
	}
	if config.Path == "" {
		config.Path = "/"
	}
	if log == nil {
		log = logrus.New()
	}
	s := &Shield{
		Address:  config.ListenAddress,
		Path:     config.Path,
		MaxDelay: time.Duration(config.MaxDelaySeconds) * time.Second,
		IO:       newShieldIO(),
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			// the game client sends no Origin header
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	return s
}

func (s *Shield) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !s.IO.claim() {
			http.Error(rw, "a game client is already connected", http.StatusConflict)
			return
		}
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.IO.release()
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()
		s.serve(conn, r.RemoteAddr)
	}
}

func (s *Shield) serve(conn *websocket.Conn, remote string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess := &session{remote: remote, out: make(chan []*Frame, 64), done: make(chan struct{})}
	defer close(sess.done)

	logger := s.log.WithField("remote", remote)
	logger.Info("game client connected")

	// writer
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case frames := <-sess.out:
				for _, f := range frames {
					_ = conn.SetWriteDeadline(time.Now().Add(s.MaxDelay))
					if err := conn.WriteJSON(f); err != nil {
						logger.WithError(err).Warn("write frame failed")
						cancel()
						_ = conn.Close()
						return
					}
				}
			}
		}
	}()

	s.IO.attach(sess)
	defer s.IO.detach(sess)

	// reader
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("session terminated")
			} else {
				logger.Info("game client disconnected")
			}
			return
		}
		f := &Frame{}
		if err := json.Unmarshal(msg, f); err != nil {
			logger.WithError(err).Debug("drop undecodable frame")
			continue
		}
		s.IO.dispatch(f)
	}
}

// Routine blocks until the listener stops
func (s *Shield) Routine() error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.Path, s.Handler())
	s.server = &http.Server{Addr: s.Address, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	s.log.Infof("waiting for game client: /connect %v", s.Address)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Shield) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.MaxDelay)
	defer cancel()
	return s.server.Shutdown(ctx)
}
