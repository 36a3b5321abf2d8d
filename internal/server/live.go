package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/scroll"
)

const (
	liveRoute       = "/ws/scroll"
	maxLiveSubjects = 32
	liveWriteWait   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type     string  `json:"type"` // "measure", "resize" or "scroll"
	Subject  string  `json:"subject"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
	Viewport float64 `json:"viewport"`
	Offset   float64 `json:"offset"`
	Lines    int     `json:"lines"`
	Petals   int     `json:"petals"`
}

// liveMessage is the outgoing WebSocket message format.
type liveMessage struct {
	Type     string              `json:"type"` // "hello", "frame" or "error"
	Session  string              `json:"session"`
	Subject  string              `json:"subject,omitempty"`
	Seq      uint64              `json:"seq,omitempty"`
	Progress float64             `json:"progress"`
	Lines    []scroll.LineState  `json:"lines,omitempty"`
	Petals   []scroll.PetalState `json:"petals,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// liveSubject is one tracked region of the page. Its line and petal counts
// are fixed by the first measure message.
type liveSubject struct {
	driver *scroll.Driver
	lines  int
	petals int
}

// liveSession owns the drivers of one connection. Only the read loop touches
// subjects; forwarders and the writer communicate over out.
type liveSession struct {
	id       string
	srv      *Server
	conn     *websocket.Conn
	logger   *zap.Logger
	subjects map[string]*liveSubject

	out        chan liveMessage
	stop       chan struct{}
	writerDone chan struct{}
	forwarders sync.WaitGroup
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.sessionMu.Lock()
	select {
	case <-s.closing:
		s.sessionMu.Unlock()
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	default:
	}
	s.sessions.Add(1)
	s.sessionMu.Unlock()
	defer s.sessions.Done()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("live: websocket upgrade", zap.Error(err))
		return
	}

	id := uuid.NewString()
	sess := &liveSession{
		id:         id,
		srv:        s,
		conn:       conn,
		logger:     s.logger.With(zap.String("session", id)),
		subjects:   make(map[string]*liveSubject),
		out:        make(chan liveMessage, 16),
		stop:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	sess.run()
}

func (ls *liveSession) run() {
	m := ls.srv.metrics
	m.sessions.Inc()
	defer m.sessions.Dec()
	ls.logger.Debug("live session opened")

	go ls.writeLoop()
	ls.send(liveMessage{Type: "hello", Session: ls.id})
	ls.readLoop()

	// Closing each driver closes its frame channel, which ends its forwarder.
	for _, sub := range ls.subjects {
		sub.driver.Close()
	}
	ls.forwarders.Wait()
	close(ls.stop)
	<-ls.writerDone
	ls.conn.Close()
	ls.logger.Debug("live session closed", zap.Int("subjects", len(ls.subjects)))
}

func (ls *liveSession) readLoop() {
	for {
		_, msg, err := ls.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ls.logger.Debug("live: websocket read", zap.Error(err))
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			ls.sendError("", "invalid message format")
			continue
		}
		if req.Subject == "" {
			ls.sendError("", "subject is required")
			continue
		}

		switch req.Type {
		case "measure":
			ls.measure(req)
		case "resize":
			if sub, ok := ls.lookup(req.Subject); ok {
				sub.driver.Resize(req.Viewport)
			}
		case "scroll":
			if sub, ok := ls.lookup(req.Subject); ok {
				sub.driver.Scroll(req.Offset)
			}
		default:
			ls.sendError(req.Subject, "unknown message type: "+req.Type)
		}
	}
}

func (ls *liveSession) lookup(subject string) (*liveSubject, bool) {
	sub, ok := ls.subjects[subject]
	if !ok {
		ls.sendError(subject, "subject has not been measured")
	}
	return sub, ok
}

func (ls *liveSession) measure(req liveRequest) {
	if sub, ok := ls.subjects[req.Subject]; ok {
		sub.driver.Measure(req.Top, req.Height)
		if req.Viewport > 0 {
			sub.driver.Resize(req.Viewport)
		}
		return
	}
	if len(ls.subjects) >= maxLiveSubjects {
		ls.sendError(req.Subject, "too many subjects")
		return
	}

	sub := &liveSubject{
		driver: scroll.NewDriver(
			scroll.WithFrameRate(ls.srv.cfg.FrameRate),
			scroll.WithLogger(ls.logger.With(zap.String("subject", req.Subject))),
			scroll.WithInitialGeometry(scroll.Measure(req.Top, req.Height, req.Viewport)),
		),
		lines:  max(req.Lines, 0),
		petals: max(req.Petals, 0),
	}
	ls.subjects[req.Subject] = sub

	ls.forwarders.Add(1)
	go ls.forward(req.Subject, sub)
}

// forward turns driver frames into outgoing messages until the driver closes.
func (ls *liveSession) forward(subject string, sub *liveSubject) {
	defer ls.forwarders.Done()
	travel := ls.srv.cfg.Travel
	for f := range sub.driver.Frames() {
		msg := liveMessage{
			Type:     "frame",
			Session:  ls.id,
			Subject:  subject,
			Seq:      f.Seq,
			Progress: f.Progress,
			Lines:    scroll.RevealAll(f.Progress, sub.lines, travel),
			Petals:   scroll.RevealPetals(f.Progress, sub.petals),
		}
		select {
		case ls.out <- msg:
		case <-ls.writerDone:
			// Keep draining so the driver can be closed.
		}
	}
}

func (ls *liveSession) writeLoop() {
	defer close(ls.writerDone)
	for {
		select {
		case msg := <-ls.out:
			ls.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := ls.conn.WriteJSON(msg); err != nil {
				ls.logger.Debug("live: websocket write", zap.Error(err))
				ls.conn.Close()
				return
			}
			if msg.Type == "frame" {
				ls.srv.metrics.frames.Inc()
			}
		case <-ls.srv.closing:
			ls.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			ls.conn.Close()
			return
		case <-ls.stop:
			return
		}
	}
}

func (ls *liveSession) send(msg liveMessage) {
	select {
	case ls.out <- msg:
	case <-ls.writerDone:
	}
}

func (ls *liveSession) sendError(subject, message string) {
	ls.send(liveMessage{Type: "error", Session: ls.id, Subject: subject, Error: message})
}
